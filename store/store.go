package store

import (
	"context"
	"errors"

	"github.com/cet3001/CreatorShelf/model"

	"gorm.io/gorm"
)

var (
	// ErrLinkNotFound means no active link matches the short code. Inactive
	// links are deliberately indistinguishable from absent ones here.
	ErrLinkNotFound = errors.New("link not found")
)

// Store wraps the gorm handle with the queries this service owns: unique
// lookup by short code, append-only scan-event inserts, and the bounded
// recent-events read behind analytics.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindActiveLink fetches the unique active link for a short code.
func (s *Store) FindActiveLink(ctx context.Context, shortCode string) (*model.Link, error) {
	var link model.Link
	err := s.db.WithContext(ctx).
		Where("short_code = ? AND is_active = ?", shortCode, true).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// FindLink fetches a link by short code regardless of activation; the
// owner-facing analytics view covers paused links too.
func (s *Store) FindLink(ctx context.Context, shortCode string) (*model.Link, error) {
	var link model.Link
	err := s.db.WithContext(ctx).
		Where("short_code = ?", shortCode).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// ShortCodeExists checks the persisted code set, active or not. Retired
// links keep their codes reserved because short codes are immutable.
func (s *Store) ShortCodeExists(ctx context.Context, shortCode string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Link{}).
		Where("short_code = ?", shortCode).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateLink inserts a new Spark link. A duplicate short code surfaces as
// the driver's unique-constraint error and propagates to the caller.
func (s *Store) CreateLink(ctx context.Context, link *model.Link) error {
	return s.db.WithContext(ctx).Create(link).Error
}

// CreateScanEvent appends one scan event. There is no update or delete
// counterpart; the scan log is append-only.
func (s *Store) CreateScanEvent(ctx context.Context, event *model.ScanEvent) error {
	return s.db.WithContext(ctx).Create(event).Error
}

// RecentScanEvents reads up to limit most-recent events for a link,
// newest first. High-traffic links are therefore aggregated over a recent
// window, not their full history.
func (s *Store) RecentScanEvents(ctx context.Context, linkID string, limit int) ([]model.ScanEvent, error) {
	var events []model.ScanEvent
	err := s.db.WithContext(ctx).
		Where("link_id = ?", linkID).
		Order("scanned_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Ping verifies the backing connection is still usable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
