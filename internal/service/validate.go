package service

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
)

var domainRegexp = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?)+$`)

// validateOriginalURL checks that the given string is an absolute http or
// https URL whose host is a domain name, localhost or a dotted IPv4 address.
func validateOriginalURL(rawURL string) error {
	const op = "service.validateOriginalURL"

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidURL)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s: %w", op, ErrInvalidURL)
	}

	host := u.Hostname()
	if host == "localhost" || domainRegexp.MatchString(host) {
		return nil
	}

	if ip := net.ParseIP(host); ip != nil && ip.To4() != nil {
		return nil
	}

	return fmt.Errorf("%s: %w", op, ErrInvalidURL)
}
