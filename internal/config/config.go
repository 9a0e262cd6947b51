package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultAPIURL is the local development API root.
const DefaultAPIURL = "http://localhost:3001/api"

// APIURLEnv overrides the configured API root when set.
const APIURLEnv = "BLOG_API_URL"

// Config represents the main configuration for blogctl.
type Config struct {
	APIURL     string           `toml:"api_url"`
	BaseDir    string           `toml:"base_dir"`
	LogDir     string           `toml:"log_dir"`
	TokenStore TokenStoreConfig `toml:"token_store"`
	Encryption EncryptionConfig `toml:"encryption"`
	Journal    JournalConfig    `toml:"journal"`
}

// TokenStoreConfig selects where the bearer token is persisted.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type TokenStoreConfig struct {
	Type string `toml:"type"` // "memory", "filesystem" or "redis"

	// FileSystem-specific fields (only used when Type == "filesystem")
	Dir     string `toml:"dir,omitempty"`
	Encrypt bool   `toml:"encrypt,omitempty"`

	// Redis-specific fields (only used when Type == "redis")
	RedisAddr     string `toml:"redis_addr,omitempty"`
	RedisPassword string `toml:"redis_password,omitempty"`
	RedisDB       int    `toml:"redis_db,omitempty"`
	RedisPrefix   string `toml:"redis_prefix,omitempty"`
}

// EncryptionConfig holds paths to the age key pair protecting the token file.
type EncryptionConfig struct {
	Type           string `toml:"type"` // "age" (default) or "test"
	PublicKeyPath  string `toml:"public_key_path"`
	PrivateKeyPath string `toml:"private_key_path"`
}

// JournalConfig represents configuration for the local operation journal.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type JournalConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// NewConfig creates a new Config rooted at baseDir with the default layout:
// token file, keys and journal all live under baseDir.
func NewConfig(apiURL, baseDir string) *Config {
	return &Config{
		APIURL:  apiURL,
		BaseDir: baseDir,
		LogDir:  filepath.Join(baseDir, "log"),
		TokenStore: TokenStoreConfig{
			Type:    "filesystem",
			Dir:     filepath.Join(baseDir, "session"),
			Encrypt: true,
		},
		Encryption: EncryptionConfig{
			Type:           "age",
			PublicKeyPath:  filepath.Join(baseDir, "keys", "blogctl.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "blogctl.key"),
		},
		Journal: JournalConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "db"),
		},
	}
}

// ResolveAPIURL returns the API root: BLOG_API_URL (after loading a .env
// file from the working directory, if any), then the configured value,
// then DefaultAPIURL.
func (c *Config) ResolveAPIURL() string {
	// A missing .env file is the common case.
	_ = godotenv.Load()
	if v := os.Getenv(APIURLEnv); v != "" {
		return v
	}
	if c.APIURL != "" {
		return c.APIURL
	}
	return DefaultAPIURL
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// The file may carry a redis password.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
