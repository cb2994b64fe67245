package valueobjects

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email is a normalized (trimmed, lower-cased) address. Two addresses that
// differ only by case are the same account.
type Email struct {
	value string
}

func NewEmail(value string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))

	if normalized == "" {
		return Email{}, fmt.Errorf("email cannot be empty")
	}
	if len(normalized) > 255 {
		return Email{}, fmt.Errorf("email cannot exceed 255 characters")
	}
	if !emailRegex.MatchString(normalized) {
		return Email{}, fmt.Errorf("invalid email format: %s", value)
	}

	return Email{value: normalized}, nil
}

func (e Email) String() string {
	return e.value
}

func (e Email) IsZero() bool {
	return e.value == ""
}

func (e Email) Equals(other Email) bool {
	return e.value == other.value
}

// Masked keeps the first character of the local part, for logs.
func (e Email) Masked() string {
	local, domain, ok := strings.Cut(e.value, "@")
	if !ok || local == "" {
		return "***"
	}
	return local[:1] + "***@" + domain
}
