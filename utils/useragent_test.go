package utils

import "testing"

func TestClassifyUserAgent(t *testing.T) {
	tests := []struct {
		name       string
		userAgent  string
		wantDevice string
		wantOS     string
	}{
		{
			"iPhone",
			"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15",
			"Mobile", "iOS",
		},
		{
			"iPad checked before Macintosh",
			"Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X) AppleWebKit/605.1.15",
			"Tablet", "iOS",
		},
		{
			"Android phone",
			"Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 Mobile Safari/537.36",
			"Mobile", "Android",
		},
		{
			"Android tablet lacks Mobile token",
			"Mozilla/5.0 (Linux; Android 13; SM-X710) AppleWebKit/537.36 Safari/537.36",
			"Tablet", "Android",
		},
		{
			"Windows desktop",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			"Desktop", "Windows",
		},
		{
			"macOS desktop",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15",
			"Desktop", "macOS",
		},
		{
			"Linux desktop",
			"Mozilla/5.0 (X11; Linux x86_64) Gecko/20100101 Firefox/121.0",
			"Desktop", "Linux",
		},
		{
			"curl",
			"curl/8.0",
			Unknown, Unknown,
		},
		{
			"Empty",
			"",
			Unknown, Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyUserAgent(tt.userAgent)
			if got.DeviceType != tt.wantDevice {
				t.Errorf("DeviceType = %q, want %q", got.DeviceType, tt.wantDevice)
			}
			if got.OS != tt.wantOS {
				t.Errorf("OS = %q, want %q", got.OS, tt.wantOS)
			}
		})
	}
}
