package tokenstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"blogctl/internal/blog"
	"blogctl/internal/config"
	"blogctl/internal/encryption"
)

// exerciseStore runs the behavior every TokenStore must share.
func exerciseStore(t *testing.T, s blog.TokenStore) {
	t.Helper()
	ctx := context.Background()

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() on empty store error: %v", err)
	}
	if got != "" {
		t.Fatalf("Load() on empty store = %q, want empty", got)
	}

	if err := s.Save(ctx, "token-1"); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if got, _ := s.Load(ctx); got != "token-1" {
		t.Errorf("Load() = %q, want %q", got, "token-1")
	}

	if err := s.Save(ctx, "token-2"); err != nil {
		t.Fatalf("Save() overwrite error: %v", err)
	}
	if got, _ := s.Load(ctx); got != "token-2" {
		t.Errorf("Load() after overwrite = %q, want %q", got, "token-2")
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if got, _ := s.Load(ctx); got != "" {
		t.Errorf("Load() after Clear = %q, want empty", got)
	}

	if err := s.Clear(ctx); err != nil {
		t.Errorf("Clear() on empty store error: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileSystemStore_Plain(t *testing.T) {
	s, err := NewFileSystemStore(filepath.Join(t.TempDir(), "session"), nil)
	if err != nil {
		t.Fatalf("NewFileSystemStore() error: %v", err)
	}
	exerciseStore(t, s)
}

func TestFileSystemStore_Encrypted(t *testing.T) {
	s, err := NewFileSystemStore(t.TempDir(), encryption.NewTestEncryptor())
	if err != nil {
		t.Fatalf("NewFileSystemStore() error: %v", err)
	}
	exerciseStore(t, s)
}

func TestFileSystemStore_FileModeAndContent(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileSystemStore(dir, encryption.NewTestEncryptor())
	if err != nil {
		t.Fatalf("NewFileSystemStore() error: %v", err)
	}
	if err := s.Save(context.Background(), "secret-token"); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if s.Path() != filepath.Join(dir, "auth_token") {
		t.Errorf("Path() = %q, want file named auth_token", s.Path())
	}
	info, err := os.Stat(s.Path())
	if err != nil {
		t.Fatalf("stat token file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("token file mode = %o, want 600", perm)
	}

	raw, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("reading token file: %v", err)
	}
	if !strings.HasPrefix(string(raw), "BLOGENC") {
		t.Errorf("token file is not encrypted: %q", raw)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the token file", len(entries))
	}
}

func TestFileSystemStore_AgeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	enc := encryption.NewAgeEncryptor(config.EncryptionConfig{
		PublicKeyPath:  filepath.Join(dir, "keys", "blogctl.pub"),
		PrivateKeyPath: filepath.Join(dir, "keys", "blogctl.key"),
	})
	if err := enc.Setup(); err != nil {
		t.Fatalf("Setup() error: %v", err)
	}

	s, err := NewFileSystemStore(filepath.Join(dir, "session"), enc)
	if err != nil {
		t.Fatalf("NewFileSystemStore() error: %v", err)
	}
	exerciseStore(t, s)
}

func TestFileSystemStore_CorruptCiphertext(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileSystemStore(dir, encryption.NewTestEncryptor())
	if err != nil {
		t.Fatalf("NewFileSystemStore() error: %v", err)
	}
	if err := os.WriteFile(s.Path(), []byte("garbage"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(context.Background()); err == nil {
		t.Error("Load() of corrupt ciphertext should return error")
	}
}

func TestTTLFor(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	sign := func(claims jwt.RegisteredClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
		if err != nil {
			t.Fatalf("signing: %v", err)
		}
		return s
	}

	tests := []struct {
		name  string
		token string
		want  time.Duration
	}{
		{name: "opaque token", token: "not-a-jwt", want: 0},
		{name: "jwt without exp", token: sign(jwt.RegisteredClaims{Subject: "u1"}), want: 0},
		{name: "jwt with exp", token: sign(jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(2 * time.Hour))}), want: 2 * time.Hour},
		{name: "expired jwt", token: sign(jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour))}), want: time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ttlFor(tt.token, now); got != tt.want {
				t.Errorf("ttlFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewTokenStoreFromConfig(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     config.TokenStoreConfig
		enc     blog.Encryptor
		want    string
		wantErr bool
	}{
		{name: "memory", cfg: config.TokenStoreConfig{Type: "memory"}, want: "*tokenstore.MemoryStore"},
		{name: "filesystem", cfg: config.TokenStoreConfig{Type: "filesystem", Dir: dir}, want: "*tokenstore.FileSystemStore"},
		{name: "encrypted filesystem", cfg: config.TokenStoreConfig{Type: "filesystem", Dir: dir, Encrypt: true}, enc: encryption.NewTestEncryptor(), want: "*tokenstore.FileSystemStore"},
		{name: "encrypted without keys", cfg: config.TokenStoreConfig{Type: "filesystem", Dir: dir, Encrypt: true}, wantErr: true},
		{name: "filesystem without dir", cfg: config.TokenStoreConfig{Type: "filesystem"}, wantErr: true},
		{name: "redis", cfg: config.TokenStoreConfig{Type: "redis", RedisAddr: "localhost:6379", RedisPrefix: "blogctl:"}, want: "*tokenstore.RedisStore"},
		{name: "redis without addr", cfg: config.TokenStoreConfig{Type: "redis"}, wantErr: true},
		{name: "unknown", cfg: config.TokenStoreConfig{Type: "cookie"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewTokenStoreFromConfig(tt.cfg, tt.enc)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewTokenStoreFromConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := typeName(s); got != tt.want {
				t.Errorf("store type = %s, want %s", got, tt.want)
			}
			if c, ok := s.(io.Closer); ok {
				c.Close()
			}
		})
	}
}

func TestRedisStore_Key(t *testing.T) {
	s, err := NewTokenStoreFromConfig(config.TokenStoreConfig{Type: "redis", RedisAddr: "localhost:6379", RedisPrefix: "blogctl:"}, nil)
	if err != nil {
		t.Fatalf("NewTokenStoreFromConfig() error: %v", err)
	}
	rs := s.(*RedisStore)
	defer rs.Close()
	if rs.Key() != "blogctl:auth_token" {
		t.Errorf("Key() = %q, want %q", rs.Key(), "blogctl:auth_token")
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *MemoryStore:
		return "*tokenstore.MemoryStore"
	case *FileSystemStore:
		return "*tokenstore.FileSystemStore"
	case *RedisStore:
		return "*tokenstore.RedisStore"
	default:
		return "unknown"
	}
}
