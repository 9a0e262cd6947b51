package encryption

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"blogctl/internal/config"
)

func newTestAgeEncryptor(t *testing.T) *AgeEncryptor {
	t.Helper()
	dir := t.TempDir()
	cfg := config.EncryptionConfig{
		PublicKeyPath:  filepath.Join(dir, "keys", "blogctl.pub"),
		PrivateKeyPath: filepath.Join(dir, "keys", "blogctl.key"),
	}
	return NewAgeEncryptor(cfg)
}

func TestAgeEncryptor_IsConfigured_BeforeSetup(t *testing.T) {
	t.Parallel()
	e := newTestAgeEncryptor(t)
	if e.IsConfigured() {
		t.Error("IsConfigured() = true before Setup, want false")
	}
}

func TestAgeEncryptor_Setup_IsConfigured(t *testing.T) {
	t.Parallel()
	e := newTestAgeEncryptor(t)

	if err := e.Setup(); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	if !e.IsConfigured() {
		t.Error("IsConfigured() = false after Setup, want true")
	}

	info, err := os.Stat(e.privateKeyPath)
	if err != nil {
		t.Fatalf("stat private key: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("private key mode = %o, want 600", perm)
	}
}

func TestAgeEncryptor_EncryptDecryptRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
	}{
		{name: "jwt", input: []byte("eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJ1MSJ9.c2ln")},
		{name: "empty", input: []byte{}},
		{name: "binary data", input: []byte{0x00, 0xff, 0x01, 0xfe}},
		{name: "large data", input: bytes.Repeat([]byte("abcdef"), 10000)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newTestAgeEncryptor(t)
			if err := e.Setup(); err != nil {
				t.Fatalf("Setup() error = %v", err)
			}

			var encrypted bytes.Buffer
			if err := e.Encrypt(bytes.NewReader(tt.input), &encrypted); err != nil {
				t.Fatalf("Encrypt() error = %v", err)
			}

			if len(tt.input) > 0 && bytes.Contains(encrypted.Bytes(), tt.input) {
				t.Error("encrypted output contains the plaintext")
			}

			var decrypted bytes.Buffer
			if err := e.Decrypt(bytes.NewReader(encrypted.Bytes()), &decrypted); err != nil {
				t.Fatalf("Decrypt() error = %v", err)
			}

			if !bytes.Equal(decrypted.Bytes(), tt.input) {
				t.Errorf("round-trip failed: got %d bytes, want %d bytes", decrypted.Len(), len(tt.input))
			}
		})
	}
}

func TestAgeEncryptor_DecryptWithOtherKey(t *testing.T) {
	t.Parallel()

	a := newTestAgeEncryptor(t)
	b := newTestAgeEncryptor(t)
	if err := a.Setup(); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if err := b.Setup(); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	var encrypted bytes.Buffer
	if err := a.Encrypt(bytes.NewReader([]byte("secret")), &encrypted); err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	var out bytes.Buffer
	if err := b.Decrypt(bytes.NewReader(encrypted.Bytes()), &out); err == nil {
		t.Error("Decrypt() with a different identity should return error")
	}
}

func TestAgeEncryptor_EncryptBeforeSetup(t *testing.T) {
	t.Parallel()

	e := newTestAgeEncryptor(t)
	var buf bytes.Buffer
	err := e.Encrypt(bytes.NewReader([]byte("data")), &buf)
	if err == nil {
		t.Error("Encrypt() before Setup should return error")
	}
}

func TestAgeEncryptor_DecryptBeforeSetup(t *testing.T) {
	t.Parallel()

	e := newTestAgeEncryptor(t)
	var buf bytes.Buffer
	if err := e.Decrypt(bytes.NewReader([]byte("data")), &buf); err == nil {
		t.Error("Decrypt() before Setup should return error")
	}
}

func TestNewEncryptorFromConfig(t *testing.T) {
	t.Parallel()

	keys := config.EncryptionConfig{PublicKeyPath: "/keys/blogctl.pub", PrivateKeyPath: "/keys/blogctl.key"}
	encrypted := config.TokenStoreConfig{Type: "filesystem", Dir: "/session", Encrypt: true}

	tests := []struct {
		name    string
		enc     config.EncryptionConfig
		store   config.TokenStoreConfig
		want    string // "" means no encryptor
		wantErr bool
	}{
		{name: "default is age", enc: keys, store: encrypted, want: "*encryption.AgeEncryptor"},
		{name: "age", enc: config.EncryptionConfig{Type: "age", PublicKeyPath: keys.PublicKeyPath, PrivateKeyPath: keys.PrivateKeyPath}, store: encrypted, want: "*encryption.AgeEncryptor"},
		{name: "test", enc: config.EncryptionConfig{Type: "test"}, store: encrypted, want: "*encryption.TestEncryptor"},
		{name: "age without key paths", enc: config.EncryptionConfig{Type: "age"}, store: encrypted, wantErr: true},
		{name: "unknown", enc: config.EncryptionConfig{Type: "rot13"}, store: encrypted, wantErr: true},
		{name: "plain filesystem store needs no keys", enc: config.EncryptionConfig{Type: "rot13"}, store: config.TokenStoreConfig{Type: "filesystem", Dir: "/session"}},
		{name: "memory store", store: config.TokenStoreConfig{Type: "memory", Encrypt: true}},
		{name: "redis store", store: config.TokenStoreConfig{Type: "redis", RedisAddr: "localhost:6379"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := NewEncryptorFromConfig(tt.enc, tt.store)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewEncryptorFromConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			got := ""
			if enc != nil {
				got = fmt.Sprintf("%T", enc)
			}
			if got != tt.want {
				t.Errorf("NewEncryptorFromConfig() = %s, want %q", got, tt.want)
			}
		})
	}
}
