package rewards

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigError reports a wheel configuration that cannot be played: an unknown pool, a zero-weight pool,
// an empty template, or a reward with no sector. It is detected at construction and is fatal.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return "wheel config invalid: " + strings.Join(e.Problems, "; ")
}

// configErrorf builds a single-problem ConfigError.
func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Problems: []string{fmt.Sprintf(format, args...)}}
}

// NewConfigError is used by packages that validate against the registry (sector layout, bonus rules).
func NewConfigError(format string, args ...any) *ConfigError {
	return configErrorf(format, args...)
}

// IsConfigError reports whether err (or anything it wraps) is a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// problems accumulates messages and turns them into a ConfigError only when non-empty.
type problems []string

func (p *problems) add(format string, args ...any) {
	*p = append(*p, fmt.Sprintf(format, args...))
}

func (p problems) err() error {
	if len(p) == 0 {
		return nil
	}
	return &ConfigError{Problems: append([]string(nil), p...)}
}
