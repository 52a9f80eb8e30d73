package utils

import (
	"net/http"
	"strings"
)

// ClientIP extracts a best-effort client address: the first entry of
// X-Forwarded-For, then X-Real-IP, then the "unknown" sentinel. RemoteAddr
// is deliberately not used; behind the managed proxy it only names the
// load balancer.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return UnknownIPHash
}
