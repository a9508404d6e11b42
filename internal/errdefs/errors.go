// Package errdefs defines the error taxonomy shared by the bootstrap
// workflow: usage errors from bad invocations, configuration errors from
// missing or malformed profile files, and dependency errors propagated from
// the database, the migration engine, or the importer.
package errdefs

import (
	"errors"
	"fmt"
)

// UsageError reports an invalid or missing command-line argument. The CLI
// prints usage text for it and exits 1 without attempting any side effect.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

// Usagef builds a UsageError from a format string.
func Usagef(format string, args ...interface{}) *UsageError {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// IsUsage reports whether err is a UsageError.
func IsUsage(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

// ConfigurationError reports a missing or unreadable configuration file for
// an otherwise valid profile. Raised before any database or migration call.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration file %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("configuration file %s not found", e.Path)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsConfiguration reports whether err is a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// DependencyError wraps a failure from a delegated stage (database client,
// migration engine, importer, server). The underlying cause is forwarded
// verbatim to the operator.
type DependencyError struct {
	Stage string
	Err   error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

// Dependency wraps err as a DependencyError for the named stage. A nil err
// returns nil so callers can wrap unconditionally.
func Dependency(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &DependencyError{Stage: stage, Err: err}
}
