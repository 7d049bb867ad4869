package service

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordService(t *testing.T) {
	service := NewPasswordService()
	assert.NotNil(t, service)
	assert.IsType(t, &passwordService{}, service)
}

func TestPasswordService_GeneratePassword(t *testing.T) {
	service := NewPasswordService()

	t.Run("Success_GeneratesVerifiablePassword", func(t *testing.T) {
		plain, hashed, err := service.GeneratePassword()
		require.NoError(t, err)

		decoded, err := base64.RawURLEncoding.DecodeString(plain)
		require.NoError(t, err)
		assert.Len(t, decoded, 12)

		assert.Contains(t, hashed, "$argon2id$")
		assert.True(t, service.ComparePassword(plain, hashed))
	})

	t.Run("Success_PasswordsDiffer", func(t *testing.T) {
		first, _, err := service.GeneratePassword()
		require.NoError(t, err)
		second, _, err := service.GeneratePassword()
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}

func TestPasswordService_ComparePassword(t *testing.T) {
	service := NewPasswordService()
	hashed, err := service.HashPassword("correct horse")
	require.NoError(t, err)

	t.Run("Success_Match", func(t *testing.T) {
		assert.True(t, service.ComparePassword("correct horse", hashed))
	})

	t.Run("Failure_WrongPassword", func(t *testing.T) {
		assert.False(t, service.ComparePassword("battery staple", hashed))
	})

	t.Run("Failure_InvalidHash", func(t *testing.T) {
		assert.False(t, service.ComparePassword("correct horse", "not-a-hash"))
		assert.False(t, service.ComparePassword("correct horse", ""))
	})
}
