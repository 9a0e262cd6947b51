package blog

import "io"

// Encryptor protects the persisted token at rest.
type Encryptor interface {
	// Setup performs one-time key generation. Called during `blogctl config init`.
	Setup() error

	// Encrypt reads plaintext from r and writes ciphertext to w.
	Encrypt(r io.Reader, w io.Writer) error

	// Decrypt reads ciphertext from r and writes plaintext to w.
	Decrypt(r io.Reader, w io.Writer) error

	// IsConfigured returns true if the key material exists.
	IsConfigured() bool
}
