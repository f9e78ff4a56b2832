// Package utils holds small text helpers shared by models and services.
package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CollapseSpaces trims s and squeezes every run of whitespace into one space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FoldAccents lower-cases s and strips diacritics, so "Atención" and
// "atencion" compare equal. Ñ folds to n.
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// ContainsFold reports whether s contains substr ignoring case and accents.
func ContainsFold(s, substr string) bool {
	return strings.Contains(FoldAccents(s), FoldAccents(substr))
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// NilIfBlank returns nil for nil or whitespace-only strings and a trimmed
// copy otherwise.
func NilIfBlank(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FirstNonEmpty returns the first argument that is not blank.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
