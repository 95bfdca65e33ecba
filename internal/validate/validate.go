// Package validate provides pure validators for the collected profile fields.
package validate

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Field limits. The age bounds are also enforced by a CHECK constraint in the
// users table.
const (
	MaxNameLen    = 100
	MaxAddressLen = 255
	MinAge        = 13
	MaxAge        = 120
)

// Reason codes consumed by the dialogue engine to pick the reprompt text.
var (
	ErrEmpty      = errors.New("empty")
	ErrTooLong    = errors.New("too long")
	ErrNotANumber = errors.New("not a number")
	ErrOutOfRange = errors.New("out of range")
)

// Name trims surrounding whitespace and returns the result, rejecting empty
// input and input longer than MaxNameLen characters.
func Name(text string) (string, error) {
	name := strings.TrimSpace(text)
	if name == "" {
		return "", ErrEmpty
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		return "", ErrTooLong
	}
	return name, nil
}

// Age parses the text as a base-10 integer and checks it against
// [MinAge, MaxAge].
func Age(text string) (int, error) {
	age, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, ErrNotANumber
	}
	if age < MinAge || age > MaxAge {
		return 0, ErrOutOfRange
	}
	return age, nil
}

// Address trims surrounding whitespace and returns the result, rejecting
// empty input and input longer than MaxAddressLen characters.
func Address(text string) (string, error) {
	addr := strings.TrimSpace(text)
	if addr == "" {
		return "", ErrEmpty
	}
	if utf8.RuneCountInString(addr) > MaxAddressLen {
		return "", ErrTooLong
	}
	return addr, nil
}
