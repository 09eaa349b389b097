package memetic

import (
	"errors"
	"fmt"
)

// ErrNoTargets is the reason attached to a ConfigError for an empty field.
var ErrNoTargets = errors.New("target field is empty")

// ConfigError reports an invalid run configuration. It is returned before
// any population is built.
type ConfigError struct {
	Option string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Option, e.Reason)
}

func configErr(option, format string, args ...any) *ConfigError {
	return &ConfigError{Option: option, Reason: fmt.Sprintf(format, args...)}
}

// InvariantError reports a genome that left its bounds or changed length
// after an operator. It always indicates a defect in an operator.
type InvariantError struct {
	Generation int
	Stage      string // init, offspring, refine
	Index      int    // population slot
	Err        error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated at generation %d (%s, slot %d): %v", e.Generation, e.Stage, e.Index, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}
