package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCameraType(t *testing.T) {
	for _, v := range CameraTypes {
		assert.True(t, IsValidCameraType(v), v)
	}
	assert.False(t, IsValidCameraType("Polaroid"))
	assert.False(t, IsValidCameraType("dslr"), "matching is case sensitive")
	assert.False(t, IsValidCameraType(""))
}
