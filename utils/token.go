package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// GenerateQRToken returns an unguessable token for a table QR code.
func GenerateQRToken() string {
	return uuid.NewString()
}

var (
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSeparator = regexp.MustCompile(`[\s-]+`)
)

// GenerateSlug converts a tenant name into a URL-safe slug.
func GenerateSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = slugSeparator.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
