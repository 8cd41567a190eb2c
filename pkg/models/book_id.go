package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// BookIDDigits is the zero padding applied to a book's sequence number.
const BookIDDigits = 5

var (
	bookIDRE       = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	bookIDPrefixRE = regexp.MustCompile(`^[A-Za-z]{2}$`)
)

// ValidBookID reports whether id is safe to use as a book identifier. Only
// ASCII letters, digits and underscores are accepted.
func ValidBookID(id string) bool {
	return bookIDRE.MatchString(id)
}

// FormatBookID derives a book identifier from its source prefix and sequence
// number, e.g. ("MC", 8) -> "MC_00008".
func FormatBookID(prefix string, num int) (string, error) {
	if !bookIDPrefixRE.MatchString(prefix) {
		return "", errors.Errorf("invalid book id prefix %q", prefix)
	}
	if num < 0 {
		return "", errors.Errorf("invalid book number %d", num)
	}
	return fmt.Sprintf("%s_%0*d", strings.ToUpper(prefix), BookIDDigits, num), nil
}

// ParseBookID splits a book identifier into its prefix and sequence number.
func ParseBookID(id string) (string, int, error) {
	prefix, digits, ok := strings.Cut(id, "_")
	if !ok || !bookIDPrefixRE.MatchString(prefix) || len(digits) < BookIDDigits {
		return "", 0, errors.Errorf("malformed book id %q", id)
	}
	num, err := strconv.Atoi(digits)
	if err != nil || num < 0 {
		return "", 0, errors.Errorf("malformed book id %q", id)
	}
	return prefix, num, nil
}
