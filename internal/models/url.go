package models

import "time"

// URL represents a stored mapping between a short code and an original URL.
type URL struct {
	// ID is the surrogate primary key assigned by the store on insert.
	ID int64
	// ShortCode is the unique, immutable token that identifies the mapping.
	ShortCode string
	// OriginalURL is the destination the short code redirects to.
	OriginalURL string
	// Clicks counts successful resolutions of the short code. It starts at
	// zero and never decreases.
	Clicks int64
	// CreatedAt is the timestamp set by the store at insert time.
	CreatedAt time.Time
}
