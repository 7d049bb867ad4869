// Package validation holds the field rules and the violation map shared by the
// entity builders and the HTTP request DTOs.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	validation "github.com/jellydator/validation"

	apperrors "github.com/shopfloor/shopfloor/internal/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// WrapValidationError wraps request validation errors as ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// PasswordStrength checks a password against the configured character classes.
type PasswordStrength struct {
	MinLength      int
	MaxLength      int
	RequireUpper   bool
	RequireLower   bool
	RequireNumber  bool
	RequireSpecial bool
}

// Validate implements validation.Rule.
func (p PasswordStrength) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_strength", "password must be a string")
	}

	if len(s) < p.MinLength {
		return validation.NewError(
			"validation_password_min_length",
			"password must be at least "+strconv.Itoa(p.MinLength)+" characters",
		)
	}

	if p.MaxLength > 0 && len(s) > p.MaxLength {
		return validation.NewError(
			"validation_password_max_length",
			"password must be at most "+strconv.Itoa(p.MaxLength)+" characters",
		)
	}

	if p.RequireUpper && !containsRune(s, unicode.IsUpper) {
		return validation.NewError(
			"validation_password_uppercase",
			"password must contain at least one uppercase letter",
		)
	}

	if p.RequireLower && !containsRune(s, unicode.IsLower) {
		return validation.NewError(
			"validation_password_lowercase",
			"password must contain at least one lowercase letter",
		)
	}

	if p.RequireNumber && !containsRune(s, unicode.IsNumber) {
		return validation.NewError("validation_password_number", "password must contain at least one number")
	}

	if p.RequireSpecial && !containsRune(s, isSpecial) {
		return validation.NewError(
			"validation_password_special",
			"password must contain at least one special character",
		)
	}

	return nil
}

func containsRune(s string, pred func(rune) bool) bool {
	for _, r := range s {
		if pred(r) {
			return true
		}
	}
	return false
}

func isSpecial(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// Email validates email format.
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		return emailRegex.MatchString(s)
	},
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// NoWhitespace rejects leading or trailing whitespace.
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank rejects strings that are empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// OneOf restricts a string-backed enum to the listed values.
func OneOf[T ~string](values ...T) validation.Rule {
	allowed := make([]interface{}, len(values))
	for i, v := range values {
		allowed[i] = v
	}
	return validation.In(allowed...).Error("must be one of the known values")
}
