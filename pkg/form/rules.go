package form

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailPattern        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	alphanumericPattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

// Check adapts a synchronous predicate over the field value alone.
func Check(fn func(value any) bool, message string) Rule {
	return Rule{
		Validate: func(_ context.Context, value any, _ Values) (bool, error) {
			return fn(value), nil
		},
		Message: message,
	}
}

// Required fails on values whose trimmed string form is empty.
func Required(message string) Rule {
	return Check(func(value any) bool {
		return strings.TrimSpace(asString(value)) != ""
	}, message)
}

// MinLength fails on string values shorter than min. Length is counted in
// runes so multibyte input is measured the way users read it.
func MinLength(min int, message string) Rule {
	return Check(func(value any) bool {
		return utf8.RuneCountInString(asString(value)) >= min
	}, message)
}

// MaxLength fails on string values longer than max, counted in runes.
func MaxLength(max int, message string) Rule {
	return Check(func(value any) bool {
		return utf8.RuneCountInString(asString(value)) <= max
	}, message)
}

// Email accepts addresses with a user part, a host part and a dot separated
// domain. This is the usual single-regex check, not full RFC 5322.
func Email(message string) Rule {
	return Check(func(value any) bool {
		return emailPattern.MatchString(asString(value))
	}, message)
}

// Alphanumeric accepts letters, digits and underscores only.
func Alphanumeric(message string) Rule {
	return Check(func(value any) bool {
		return alphanumericPattern.MatchString(asString(value))
	}, message)
}

// Pattern fails on string values not matching re.
func Pattern(re *regexp.Regexp, message string) Rule {
	return Check(func(value any) bool {
		return re.MatchString(asString(value))
	}, message)
}

// MatchesField fails unless the value equals the named sibling field, for
// password confirmation style checks.
func MatchesField(other, message string) Rule {
	return Rule{
		Validate: func(_ context.Context, value any, values Values) (bool, error) {
			return value == values[other], nil
		},
		Message: message,
	}
}

func asString(value any) string {
	s, _ := value.(string)
	return s
}
