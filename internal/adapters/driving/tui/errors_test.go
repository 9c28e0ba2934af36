package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	assert.NotEqual(t, ErrMissingSourceService.Error(), ErrMissingConfigurationService.Error())
}

func TestErrMissingSourceService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingSourceService.Error(), "source config service")
}

func TestErrMissingConfigurationService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingConfigurationService.Error(), "configuration service")
}
