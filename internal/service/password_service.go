// Package service provides credential helpers shared by the use cases.
package service

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/shopfloor/shopfloor/internal/errors"
)

// PasswordService generates, hashes and verifies user passwords.
type PasswordService interface {
	// GeneratePassword returns a random initial password and its Argon2id hash.
	GeneratePassword() (plainPassword string, hashedPassword string, err error)

	// HashPassword hashes a plain text password.
	HashPassword(plainPassword string) (string, error)

	// ComparePassword reports whether plainPassword matches hashedPassword.
	ComparePassword(plainPassword string, hashedPassword string) bool
}

type passwordService struct {
	hasher *pwdhash.PasswordHasher
}

// GeneratePassword creates a 12-byte random password, URL-safe base64 encoded.
func (s *passwordService) GeneratePassword() (string, string, error) {
	randomBytes := make([]byte, 12)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate password")
	}
	plainPassword := base64.RawURLEncoding.EncodeToString(randomBytes)

	hashedPassword, err := s.HashPassword(plainPassword)
	if err != nil {
		return "", "", err
	}
	return plainPassword, hashedPassword, nil
}

func (s *passwordService) HashPassword(plainPassword string) (string, error) {
	hashedPassword, err := s.hasher.Hash([]byte(plainPassword))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hashedPassword, nil
}

func (s *passwordService) ComparePassword(plainPassword string, hashedPassword string) bool {
	if hashedPassword == "" {
		return false
	}
	ok, err := s.hasher.Verify([]byte(plainPassword), hashedPassword)
	if err != nil {
		return false
	}
	return ok
}

// NewPasswordService returns a PasswordService using the Moderate Argon2id policy.
func NewPasswordService() PasswordService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// Only an invalid policy fails here.
		panic(err)
	}

	return &passwordService{
		hasher: hasher,
	}
}
