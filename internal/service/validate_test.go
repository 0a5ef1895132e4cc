package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateOriginalURL(t *testing.T) {
	tests := []struct {
		name    string
		rawURL  string
		wantErr bool
	}{
		{name: "https with path and query", rawURL: "https://example.com/path?q=1"},
		{name: "http domain", rawURL: "http://example.com"},
		{name: "subdomains", rawURL: "https://api.sub.example.co.uk/v1"},
		{name: "localhost with port", rawURL: "http://localhost:8080/x"},
		{name: "dotted ipv4", rawURL: "http://192.168.0.1/"},
		{name: "empty string", rawURL: "", wantErr: true},
		{name: "not a url", rawURL: "not a url", wantErr: true},
		{name: "unsupported scheme", rawURL: "ftp://example.com", wantErr: true},
		{name: "missing scheme", rawURL: "example.com/path", wantErr: true},
		{name: "missing host", rawURL: "http://", wantErr: true},
		{name: "single label host", rawURL: "http://example", wantErr: true},
		{name: "ipv6 host", rawURL: "http://[::1]/", wantErr: true},
		{name: "label starting with hyphen", rawURL: "http://-bad.example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOriginalURL(tt.rawURL)

			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidURL)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
