package valueobjects

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FullName is a person's display name with collapsed inner whitespace.
type FullName struct {
	value string
}

func NewFullName(value string) (FullName, error) {
	normalized := strings.Join(strings.Fields(value), " ")

	if normalized == "" {
		return FullName{}, fmt.Errorf("full name cannot be empty")
	}
	if utf8.RuneCountInString(normalized) > 100 {
		return FullName{}, fmt.Errorf("full name cannot exceed 100 characters")
	}
	for _, r := range normalized {
		if unicode.IsControl(r) {
			return FullName{}, fmt.Errorf("full name contains invalid characters")
		}
	}

	return FullName{value: normalized}, nil
}

func (n FullName) String() string {
	return n.value
}

// DisplayName title-cases each word, e.g. "ada lovelace" -> "Ada Lovelace".
func (n FullName) DisplayName() string {
	return cases.Title(language.Und).String(strings.ToLower(n.value))
}

// FirstName returns the first word, used for email greetings.
func (n FullName) FirstName() string {
	parts := strings.Fields(n.DisplayName())
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}
