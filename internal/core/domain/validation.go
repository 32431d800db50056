package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation Helpers

var findingRefDisallowed = regexp.MustCompile(`[^A-Za-z0-9_ ./\-]`)

// SanitizeFindingRef strips characters outside [A-Za-z0-9_ .-/] and truncates the
// label to MaxFindingRefLen characters.
func SanitizeFindingRef(ref string) string {
	ref = findingRefDisallowed.ReplaceAllString(strings.TrimSpace(ref), "")
	if utf8.RuneCountInString(ref) > MaxFindingRefLen {
		ref = ref[:MaxFindingRefLen]
	}
	return strings.TrimSpace(ref)
}

// IsValidFindingRef checks that a label needs no sanitizing.
func IsValidFindingRef(ref string) bool {
	return SanitizeFindingRef(ref) == ref
}

