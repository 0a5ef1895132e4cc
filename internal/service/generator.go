package service

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// codeAlphabet is the 62-symbol alphabet short codes are drawn from.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// generateShortCode returns a random candidate code of the given length.
// Candidates are not guaranteed unique; the store's uniqueness constraint
// decides whether a candidate is accepted.
func generateShortCode(length int) (string, error) {
	const op = "service.generateShortCode"

	code, err := gonanoid.Generate(codeAlphabet, length)
	if err != nil {
		return "", fmt.Errorf("%s: failed to generate short code: %w", op, err)
	}

	return code, nil
}
