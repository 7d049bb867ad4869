package validation

import (
	"fmt"
	"sort"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/shopfloor/shopfloor/internal/errors"
)

// RequiredElement describes one missing or inconsistent field of an entity.
type RequiredElement struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// String returns the human-readable message.
func (r RequiredElement) String() string {
	return r.Message
}

// Violations maps a field key to the element describing what is wrong with it.
// A nil Violations is a valid, empty map for reads; use NewViolations before writing.
type Violations map[string]RequiredElement

// NewViolations returns an empty violation map.
func NewViolations() Violations {
	return make(Violations)
}

// Add records element under field, replacing any earlier entry for the same field.
func (v Violations) Add(field string, element RequiredElement) {
	v[field] = element
}

// Require records element under field when value fails the Required check or any of
// the extra rules. It reports whether value passed.
func (v Violations) Require(field string, value any, element RequiredElement, rules ...validation.Rule) bool {
	if Check(value, append([]validation.Rule{validation.Required}, rules...)...) {
		return true
	}
	v.Add(field, element)
	return false
}

// Merge copies every entry of other into v under the entry's own key.
func (v Violations) Merge(other Violations) {
	for field, element := range other {
		v[field] = element
	}
}

// Has reports whether field carries a violation.
func (v Violations) Has(field string) bool {
	_, ok := v[field]
	return ok
}

// Empty reports whether no violation was recorded.
func (v Violations) Empty() bool {
	return len(v) == 0
}

// Keys returns the violated field keys in lexical order.
func (v Violations) Keys() []string {
	keys := make([]string, 0, len(v))
	for field := range v {
		keys = append(keys, field)
	}
	sort.Strings(keys)
	return keys
}

// Messages flattens the map into field -> message, the shape rendered to clients.
func (v Violations) Messages() map[string]string {
	out := make(map[string]string, len(v))
	for field, element := range v {
		out[field] = element.Message
	}
	return out
}

// InformationRequiredError is returned by every entity builder whose Build found
// missing or inconsistent fields. It carries the complete violation map.
type InformationRequiredError struct {
	Entity     string
	Violations Violations
}

// NewInformationRequiredError builds the error for entity from a copy of violations.
func NewInformationRequiredError(entity string, violations Violations) *InformationRequiredError {
	copied := NewViolations()
	copied.Merge(violations)
	return &InformationRequiredError{Entity: entity, Violations: copied}
}

// Error implements error.
func (e *InformationRequiredError) Error() string {
	fields := e.Violations.Keys()
	return fmt.Sprintf("%s information required: %s", e.Entity, strings.Join(fields, ", "))
}

// Unwrap ties every builder failure to apperrors.ErrInvalidInput.
func (e *InformationRequiredError) Unwrap() error {
	return apperrors.ErrInvalidInput
}

// AsInformationRequired extracts an InformationRequiredError from err's chain.
func AsInformationRequired(err error) (*InformationRequiredError, bool) {
	var target *InformationRequiredError
	if apperrors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// Check reports whether value satisfies every rule.
func Check(value any, rules ...validation.Rule) bool {
	return validation.Validate(value, rules...) == nil
}
