package errdefs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsageError(t *testing.T) {
	err := Usagef("unknown profile %q", "staging")
	assert.Equal(t, `unknown profile "staging"`, err.Error())
	assert.True(t, IsUsage(err))
	assert.True(t, IsUsage(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsUsage(errors.New("plain")))
}

func TestConfigurationError(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		err := &ConfigurationError{Path: "env/dev.env"}
		assert.Equal(t, "configuration file env/dev.env not found", err.Error())
		assert.True(t, IsConfiguration(err))
	})

	t.Run("parse failure keeps the cause", func(t *testing.T) {
		cause := errors.New("bad syntax")
		err := &ConfigurationError{Path: "env/dev.env", Err: cause}
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "bad syntax")
	})
}

func TestDependency(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Dependency("migration", nil))
	})

	t.Run("forwards the cause verbatim", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Dependency("migration", cause)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "migration: connection refused", err.Error())
	})
}
