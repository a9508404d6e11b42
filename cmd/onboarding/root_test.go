package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"onboarding/backend/internal/errdefs"
)

func TestProfileArg(t *testing.T) {
	assert.Equal(t, "local", profileArg(nil))
	assert.Equal(t, "local", profileArg([]string{}))
	assert.Equal(t, "dev", profileArg([]string{"dev"}))
}

func TestLoadProfileUnknown(t *testing.T) {
	_, _, err := loadProfile([]string{"staging"})
	assert.True(t, errdefs.IsUsage(err))
}
