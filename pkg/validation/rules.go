package validation

import (
	"errors"
	"fmt"
)

// ConfigValidator checks rules that struct tags cannot express, usually
// ones that relate two fields. Every failed rule is kept.
type ConfigValidator struct {
	section string
	errs    []error
}

// NewConfigValidator starts a rule set whose errors are prefixed with
// section.
func NewConfigValidator(section string) *ConfigValidator {
	return &ConfigValidator{section: section}
}

func (cv *ConfigValidator) fail(field, format string, args ...any) {
	cv.errs = append(cv.errs, fmt.Errorf("%s.%s: "+format, append([]any{cv.section, field}, args...)...))
}

// MinInt requires value >= min.
func (cv *ConfigValidator) MinInt(field string, value, min int) *ConfigValidator {
	if value < min {
		cv.fail(field, "%d is below the minimum of %d", value, min)
	}
	return cv
}

// Custom records the error fn returns, if any.
func (cv *ConfigValidator) Custom(field string, fn func() error) *ConfigValidator {
	if err := fn(); err != nil {
		cv.errs = append(cv.errs, fmt.Errorf("%s.%s: %w", cv.section, field, err))
	}
	return cv
}

// When runs rules only if cond holds.
func (cv *ConfigValidator) When(cond bool, rules func(*ConfigValidator)) *ConfigValidator {
	if cond {
		rules(cv)
	}
	return cv
}

// Errors returns every failed rule in the order it was checked.
func (cv *ConfigValidator) Errors() []error {
	return cv.errs
}

// Validate joins the failed rules into one error, or returns nil.
func (cv *ConfigValidator) Validate() error {
	return errors.Join(cv.errs...)
}

// Validatable is a config that can check itself.
type Validatable interface {
	Validate() error
}

// ValidateConfig calls c.Validate, treating a nil config as an error.
func ValidateConfig(c Validatable) error {
	if c == nil {
		return errors.New("config is nil")
	}
	return c.Validate()
}

// DefaultOrInt returns value, or def when value is not positive.
func DefaultOrInt(value, def int) int {
	if value <= 0 {
		return def
	}
	return value
}
