package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrUnknownSource", ErrUnknownSource},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotImplemented", ErrNotImplemented},
		{"ErrRoleSelectionFlow", ErrRoleSelectionFlow},
		{"ErrSubmitInProgress", ErrSubmitInProgress},
		{"ErrWizardFinished", ErrWizardFinished},
		{"ErrWizardClosed", ErrWizardClosed},
		{"ErrConnectionFailed", ErrConnectionFailed},
		{"ErrNoRolesSelected", ErrNoRolesSelected},
		{"ErrNoConfiguredSources", ErrNoConfiguredSources},
		{"ErrSourceNotConfigured", ErrSourceNotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestUnknownSourceError(t *testing.T) {
	err := &UnknownSourceError{ID: "myspace"}

	assert.Equal(t, `unknown source "myspace"`, err.Error())
	assert.True(t, errors.Is(err, ErrUnknownSource))
	assert.False(t, errors.Is(err, ErrInvalidInput))
}

func TestUnknownSourceError_Wrapped(t *testing.T) {
	err := fmt.Errorf("get config: %w", &UnknownSourceError{ID: "x"})

	var target *UnknownSourceError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, "x", target.ID)
	assert.ErrorIs(t, err, ErrUnknownSource)
}
