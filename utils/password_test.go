package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)

	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))

	// bcrypt salts per call, so identical inputs hash differently.
	other, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
}
