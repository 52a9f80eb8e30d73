package utils

import "strings"

// Unknown is the fallback bucket for anything the heuristics cannot place.
const Unknown = "Unknown"

// DeviceInfo is the coarse (device type, OS) pair recorded per scan.
type DeviceInfo struct {
	DeviceType string
	OS         string
}

// ClassifyUserAgent maps a raw User-Agent header to a DeviceInfo using
// ordered substring checks. iPad runs before the generic Macintosh match
// (iPad UAs can carry "like Mac OS X"), and Android tablets are told apart
// from phones by the absence of the "Mobile" token. This is a best-effort
// heuristic, not a UA parser; exotic or spoofed agents land in Unknown.
func ClassifyUserAgent(userAgent string) DeviceInfo {
	switch {
	case strings.Contains(userAgent, "iPhone"):
		return DeviceInfo{DeviceType: "Mobile", OS: "iOS"}
	case strings.Contains(userAgent, "iPad"):
		return DeviceInfo{DeviceType: "Tablet", OS: "iOS"}
	case strings.Contains(userAgent, "Android"):
		if strings.Contains(userAgent, "Mobile") {
			return DeviceInfo{DeviceType: "Mobile", OS: "Android"}
		}
		return DeviceInfo{DeviceType: "Tablet", OS: "Android"}
	case strings.Contains(userAgent, "Windows"):
		return DeviceInfo{DeviceType: "Desktop", OS: "Windows"}
	case strings.Contains(userAgent, "Macintosh"):
		return DeviceInfo{DeviceType: "Desktop", OS: "macOS"}
	case strings.Contains(userAgent, "Linux"):
		return DeviceInfo{DeviceType: "Desktop", OS: "Linux"}
	default:
		return DeviceInfo{DeviceType: Unknown, OS: Unknown}
	}
}
