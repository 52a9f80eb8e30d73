package utils

import "net/url"

// ValidateDestinationURL checks a link destination. Only http and https are
// accepted; deep links (app schemes) go through the dedicated deep-link
// fields and are not validated here.
func ValidateDestinationURL(rawURL string) error {
	if rawURL == "" {
		return ErrEmptyURL
	}

	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return ErrInvalidURL
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return ErrInvalidScheme
	}

	if parsedURL.Host == "" {
		return ErrEmptyHost
	}

	return nil
}
