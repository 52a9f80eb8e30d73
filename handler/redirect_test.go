package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cet3001/CreatorShelf/config"
	"github.com/cet3001/CreatorShelf/db"
	"github.com/cet3001/CreatorShelf/model"
	"github.com/cet3001/CreatorShelf/store"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	iphoneUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15"
	androidUA = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 Mobile Safari/537.36"
)

func testConfig() config.Config {
	return config.Config{
		WebServer: config.WebServerConfig{
			Scheme: "http",
			IP:     "localhost",
			Port:   "8080",
		},
		Database:  config.DatabaseConfig{OperationTimeout: 5},
		Cache:     config.CacheConfig{Enabled: false},
		Privacy:   config.PrivacyConfig{IPSalt: "test-salt"},
		Analytics: config.AnalyticsConfig{RecentWindow: 500},
	}
}

func newTestHandler(t *testing.T) (*LinkHandler, *store.Store) {
	t.Helper()

	// Named shared-cache DSN so the fire-and-forget recorder goroutine
	// sees the same in-memory database as the test connection
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	s := store.New(gdb)
	return NewLinkHandler(s, nil, nil, testConfig()), s
}

func seedLink(t *testing.T, s *store.Store, link *model.Link) *model.Link {
	t.Helper()
	if link.ID == "" {
		link.ID = uuid.New().String()
	}
	if link.OwnerID == "" {
		link.OwnerID = uuid.New().String()
	}
	if link.Status == "" {
		link.Status = model.LinkStatusActive
	}
	link.CreatedAt = time.Now().UTC()
	require.NoError(t, s.CreateLink(context.Background(), link))
	return link
}

func doRedirect(h *LinkHandler, shortCode, userAgent string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/r/"+shortCode, nil)
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req = mux.SetURLVars(req, map[string]string{"shortCode": shortCode})

	w := httptest.NewRecorder()
	h.Redirect(w, req)
	return w
}

func TestRedirect_IOSDeepLinkPreferred(t *testing.T) {
	h, s := newTestHandler(t)

	dest := "https://a.example"
	ios := "app://x"
	seedLink(t, s, &model.Link{
		ShortCode:      "sparkcode",
		DestinationURL: &dest,
		DeepLinkIOS:    &ios,
		IsActive:       true,
	})

	w := doRedirect(h, "sparkcode", iphoneUA, nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "app://x", w.Header().Get("Location"))
}

func TestRedirect_AndroidFallsBackToDestination(t *testing.T) {
	h, s := newTestHandler(t)

	dest := "https://a.example"
	ios := "app://x"
	seedLink(t, s, &model.Link{
		ShortCode:      "sparkcode",
		DestinationURL: &dest,
		DeepLinkIOS:    &ios,
		IsActive:       true,
	})

	// No Android deep link configured, so the generic destination wins
	w := doRedirect(h, "sparkcode", androidUA, nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://a.example", w.Header().Get("Location"))
}

func TestRedirect_AndroidDeepLink(t *testing.T) {
	h, s := newTestHandler(t)

	dest := "https://a.example"
	android := "intent://x#Intent;scheme=app;end"
	seedLink(t, s, &model.Link{
		ShortCode:       "sparkcode",
		DestinationURL:  &dest,
		DeepLinkAndroid: &android,
		IsActive:        true,
	})

	w := doRedirect(h, "sparkcode", androidUA, nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, android, w.Header().Get("Location"))
}

func TestRedirect_UnknownCode(t *testing.T) {
	h, _ := newTestHandler(t)

	w := doRedirect(h, "nosuchcode", iphoneUA, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRedirect_InactiveCodeLooksAbsent(t *testing.T) {
	h, s := newTestHandler(t)

	dest := "https://a.example"
	seedLink(t, s, &model.Link{
		ShortCode:      "sparkcode",
		DestinationURL: &dest,
		IsActive:       false,
	})

	w := doRedirect(h, "sparkcode", iphoneUA, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRedirect_Expired(t *testing.T) {
	h, s := newTestHandler(t)

	dest := "https://a.example"
	past := time.Now().UTC().Add(-time.Hour)
	seedLink(t, s, &model.Link{
		ShortCode:      "sparkcode",
		DestinationURL: &dest,
		ExpiresAt:      &past,
		IsActive:       true,
	})

	w := doRedirect(h, "sparkcode", iphoneUA, nil)

	assert.Equal(t, http.StatusGone, w.Code)
}

func TestRedirect_NoUsableDestination(t *testing.T) {
	h, s := newTestHandler(t)

	// Android deep link only; a desktop caller has nowhere to go
	android := "intent://x#Intent;scheme=app;end"
	seedLink(t, s, &model.Link{
		ShortCode:       "sparkcode",
		DeepLinkAndroid: &android,
		IsActive:        true,
	})

	w := doRedirect(h, "sparkcode", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRedirect_UnconfiguredStore(t *testing.T) {
	h := NewLinkHandler(nil, nil, nil, testConfig())

	w := doRedirect(h, "sparkcode", iphoneUA, nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRedirect_RecordsScanEvent(t *testing.T) {
	h, s := newTestHandler(t)

	dest := "https://a.example"
	link := seedLink(t, s, &model.Link{
		ShortCode:      "sparkcode",
		DestinationURL: &dest,
		IsActive:       true,
	})

	w := doRedirect(h, "sparkcode", iphoneUA, map[string]string{
		"X-Forwarded-For": "203.0.113.7",
	})
	require.Equal(t, http.StatusFound, w.Code)

	// Recording is fire-and-forget; poll briefly for the insert
	var events []model.ScanEvent
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		var err error
		events, err = s.RecentScanEvents(context.Background(), link.ID, 500)
		require.NoError(t, err)
		if len(events) > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	require.Len(t, events, 1)
	event := events[0]
	require.NotNil(t, event.DeviceType)
	require.NotNil(t, event.OS)
	assert.Equal(t, "Mobile", *event.DeviceType)
	assert.Equal(t, "iOS", *event.OS)
	assert.Len(t, event.IPHash, 16)
	assert.Nil(t, event.Country)
	assert.Nil(t, event.City)
}
