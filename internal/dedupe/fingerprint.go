package dedupe

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Normalize concatenates a card's content after cleaning each part.
// It trims whitespace, lowercases, and normalizes line endings for
// each field before joining them, so cosmetic edits to a deck file do
// not produce a different identity.
func Normalize(title, definition, clue string) string {
	normalizePart := func(part string) string {
		p := strings.ToLower(part)
		p = strings.TrimSpace(p)
		p = strings.ReplaceAll(p, "\r\n", "\n")
		return p
	}

	// Joined with a newline to keep the fields separated; otherwise
	// "title" and "definition" could run together and collide.
	return strings.Join([]string{
		normalizePart(title),
		normalizePart(definition),
		normalizePart(clue),
	}, "\n")
}

// Fingerprint normalizes a card's content and returns its SHA-256
// hash as a hex string.
func Fingerprint(title, definition, clue string) string {
	normalized := Normalize(title, definition, clue)
	hashBytes := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%x", hashBytes)
}
