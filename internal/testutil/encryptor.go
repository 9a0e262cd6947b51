package testutil

import (
	"blogctl/internal/blog"
	"blogctl/internal/encryption"
)

// NewTestEncryptor creates a new test encryptor for testing.
func NewTestEncryptor() blog.Encryptor {
	return encryption.NewTestEncryptor()
}
