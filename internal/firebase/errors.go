package firebase

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigurationMissing marks a required variable that is absent or empty.
	ErrConfigurationMissing = errors.New("configuration missing")
	// ErrConfigurationMalformed marks a variable that is present but unusable.
	ErrConfigurationMalformed = errors.New("configuration malformed")
	// ErrServiceNotConfigured is returned by handle accessors when the handle is absent.
	ErrServiceNotConfigured = errors.New("service not configured")
)

// ConfigError names the environment variable that stopped initialization.
type ConfigError struct {
	Kind error
	Var  string
	Err  error
}

func (e *ConfigError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrConfigurationMissing):
		return fmt.Sprintf("environment variable %s is missing", e.Var)
	case e.Err != nil:
		return fmt.Sprintf("environment variable %s is invalid: %v", e.Var, e.Err)
	default:
		return fmt.Sprintf("environment variable %s is invalid", e.Var)
	}
}

func (e *ConfigError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func notConfigured(name string) error {
	return fmt.Errorf("%s: %w", name, ErrServiceNotConfigured)
}
