package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/osokin/shortly/internal/database"
	"github.com/osokin/shortly/internal/models"
)

var (
	// ErrInvalidURL is returned when the original URL is not a well-formed
	// absolute http/https URL.
	ErrInvalidURL = errors.New("invalid original url")
	// ErrCodeSpaceExhausted is returned when every generated candidate code
	// collided with an existing one within the attempt bound.
	ErrCodeSpaceExhausted = errors.New("exhausted attempts to generate a unique short code")
)

const (
	// DefaultShortCodeLength is the length of generated short codes.
	DefaultShortCodeLength = 6
	// DefaultMaxCodeAttempts bounds the generate-insert retry loop.
	DefaultMaxCodeAttempts = 10
)

// URLRepository defines the interface for working with URLs at the business logic layer.
type URLRepository interface {
	// Create inserts a new shortened URL into the repository.
	// Returns database.ErrShortCodeExists if the short code is already taken.
	Create(ctx context.Context, shortCode, originalURL string) (*models.URL, error)

	// GetByOriginalURL retrieves a URL by the exact original URL string.
	// Returns database.ErrURLNotFound if the URL was never shortened.
	GetByOriginalURL(ctx context.Context, originalURL string) (*models.URL, error)

	// GetByShortCode retrieves a URL by its short code without side effects.
	GetByShortCode(ctx context.Context, shortCode string) (*models.URL, error)

	// RegisterClick atomically increments the click counter for the short code
	// and returns the post-increment record.
	RegisterClick(ctx context.Context, shortCode string) (*models.URL, error)
}

// URLService implements the URL shortening and resolution logic on top of a
// URLRepository.
type URLService struct {
	repo            URLRepository
	shortCodeLength int
	maxCodeAttempts int
}

// NewURLService creates a URLService. Non-positive shortCodeLength or
// maxCodeAttempts fall back to the package defaults.
func NewURLService(repo URLRepository, shortCodeLength, maxCodeAttempts int) *URLService {
	if shortCodeLength <= 0 {
		shortCodeLength = DefaultShortCodeLength
	}
	if maxCodeAttempts <= 0 {
		maxCodeAttempts = DefaultMaxCodeAttempts
	}

	return &URLService{
		repo:            repo,
		shortCodeLength: shortCodeLength,
		maxCodeAttempts: maxCodeAttempts,
	}
}

// ShortenURL returns a short code for the original URL. Shortening the same
// URL twice returns the first record with existing set to true. For a new URL
// it generates candidate codes and inserts until the store accepts one,
// retrying only on short code collisions up to the configured attempt bound.
func (s *URLService) ShortenURL(ctx context.Context, originalURL string) (url *models.URL, existing bool, err error) {
	const op = "service.URLService.ShortenURL"

	if err := validateOriginalURL(originalURL); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	url, err = s.repo.GetByOriginalURL(ctx, originalURL)
	if err == nil {
		return url, true, nil
	}
	if !errors.Is(err, database.ErrURLNotFound) {
		return nil, false, fmt.Errorf("%s: failed to look up original url: %w", op, err)
	}

	for i := 0; i < s.maxCodeAttempts; i++ {
		shortCode, err := generateShortCode(s.shortCodeLength)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", op, err)
		}

		url, err := s.repo.Create(ctx, shortCode, originalURL)
		if err != nil {
			if errors.Is(err, database.ErrShortCodeExists) {
				continue
			}

			return nil, false, fmt.Errorf("%s: failed to shorten url: %w", op, err)
		}

		return url, false, nil
	}

	return nil, false, fmt.Errorf("%s: %w", op, ErrCodeSpaceExhausted)
}

// ResolveShortCode retrieves the original URL associated with the short code,
// registering the click in the same store round trip.
func (s *URLService) ResolveShortCode(ctx context.Context, shortCode string) (*models.URL, error) {
	const op = "service.URLService.ResolveShortCode"

	url, err := s.repo.RegisterClick(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve short code: %w", op, err)
	}

	return url, nil
}

// GetURLStats retrieves the record for the short code without incrementing
// its click counter.
func (s *URLService) GetURLStats(ctx context.Context, shortCode string) (*models.URL, error) {
	const op = "service.URLService.GetURLStats"

	url, err := s.repo.GetByShortCode(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get url stats: %w", op, err)
	}

	return url, nil
}
