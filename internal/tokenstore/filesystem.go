package tokenstore

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"blogctl/internal/blog"
)

// FileSystemStore keeps the token in a single file:
//
//	<dir>/
//	  auth_token       (plain text, or age ciphertext when encrypted)
//
// Writes are atomic (temp file + rename) and the file is only readable by
// its owner.
type FileSystemStore struct {
	path      string
	encryptor blog.Encryptor
}

// NewFileSystemStore creates a store under dir. encryptor may be nil, in
// which case the token is stored in plain text.
func NewFileSystemStore(dir string, encryptor blog.Encryptor) (*FileSystemStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create token directory: %w", err)
	}
	return &FileSystemStore{
		path:      filepath.Join(dir, blog.TokenKey),
		encryptor: encryptor,
	}, nil
}

// Path returns the token file location.
func (s *FileSystemStore) Path() string { return s.path }

func (s *FileSystemStore) Load(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading token file: %w", err)
	}

	if s.encryptor != nil {
		var plain bytes.Buffer
		if err := s.encryptor.Decrypt(bytes.NewReader(data), &plain); err != nil {
			return "", fmt.Errorf("decrypting token: %w", err)
		}
		data = plain.Bytes()
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileSystemStore) Save(ctx context.Context, token string) error {
	data := []byte(token)
	if s.encryptor != nil {
		var sealed bytes.Buffer
		if err := s.encryptor.Encrypt(strings.NewReader(token), &sealed); err != nil {
			return fmt.Errorf("encrypting token: %w", err)
		}
		data = sealed.Bytes()
	}
	return s.writeFile(data)
}

func (s *FileSystemStore) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}

// writeFile replaces the token file using a temp file in the same directory.
func (s *FileSystemStore) writeFile(data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(s.path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if err := tmpFile.Chmod(0600); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to set token file mode: %w", err)
	}
	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write token: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

var _ blog.TokenStore = (*FileSystemStore)(nil)
