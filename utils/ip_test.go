package utils

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{
			"X-Forwarded-For single",
			map[string]string{"X-Forwarded-For": "203.0.113.7"},
			"203.0.113.7",
		},
		{
			"X-Forwarded-For takes first entry",
			map[string]string{"X-Forwarded-For": "203.0.113.7, 70.41.3.18, 150.172.238.178"},
			"203.0.113.7",
		},
		{
			"X-Forwarded-For wins over X-Real-IP",
			map[string]string{"X-Forwarded-For": "203.0.113.7", "X-Real-IP": "198.51.100.2"},
			"203.0.113.7",
		},
		{
			"X-Real-IP fallback",
			map[string]string{"X-Real-IP": "198.51.100.2"},
			"198.51.100.2",
		},
		{
			"No headers",
			nil,
			UnknownIPHash,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/r/abc", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateDestinationURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr error
	}{
		{"Valid https", "https://shop.example.com/merch", nil},
		{"Valid http", "http://example.com", nil},
		{"Empty", "", ErrEmptyURL},
		{"App scheme rejected here", "app://profile", ErrInvalidScheme},
		{"No host", "https://", ErrEmptyHost},
		{"Garbage", "not a url", ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDestinationURL(tt.url)
			if err != tt.wantErr {
				t.Errorf("ValidateDestinationURL(%q) = %v, want %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
