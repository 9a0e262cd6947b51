package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		APIURL:  "https://blog.example.com/api",
		BaseDir: "/home/user/.local/share/blogctl",
		LogDir:  "/home/user/.local/share/blogctl/log",
		TokenStore: TokenStoreConfig{
			Type:        "redis",
			RedisAddr:   "localhost:6379",
			RedisDB:     2,
			RedisPrefix: "blogctl:",
		},
		Encryption: EncryptionConfig{
			Type:           "age",
			PublicKeyPath:  "/home/user/.local/share/blogctl/keys/blogctl.pub",
			PrivateKeyPath: "/home/user/.local/share/blogctl/keys/blogctl.key",
		},
		Journal: JournalConfig{Type: "sqlite", DataDir: "/home/user/.local/share/blogctl/db"},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.APIURL != original.APIURL {
		t.Errorf("APIURL = %q, want %q", got.APIURL, original.APIURL)
	}
	if got.BaseDir != original.BaseDir {
		t.Errorf("BaseDir = %q, want %q", got.BaseDir, original.BaseDir)
	}
	if got.LogDir != original.LogDir {
		t.Errorf("LogDir = %q, want %q", got.LogDir, original.LogDir)
	}
	if got.TokenStore != original.TokenStore {
		t.Errorf("TokenStore = %+v, want %+v", got.TokenStore, original.TokenStore)
	}
	if got.Encryption != original.Encryption {
		t.Errorf("Encryption = %+v, want %+v", got.Encryption, original.Encryption)
	}
	if got.Journal != original.Journal {
		t.Errorf("Journal = %+v, want %+v", got.Journal, original.Journal)
	}
}

func TestManager_Read_Invalid(t *testing.T) {
	m := &Manager{}
	if _, err := m.Read(bytes.NewBufferString("api_url = [")); err == nil {
		t.Fatal("Read() expected error for malformed TOML")
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(DefaultAPIURL, "/data/blogctl")

	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %q, want %q", cfg.APIURL, DefaultAPIURL)
	}
	if cfg.LogDir != "/data/blogctl/log" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/data/blogctl/log")
	}
	if cfg.TokenStore.Type != "filesystem" || cfg.TokenStore.Dir != "/data/blogctl/session" || !cfg.TokenStore.Encrypt {
		t.Errorf("TokenStore = %+v, want encrypted filesystem store under session/", cfg.TokenStore)
	}
	if cfg.Encryption.PublicKeyPath != "/data/blogctl/keys/blogctl.pub" {
		t.Errorf("Encryption.PublicKeyPath = %q", cfg.Encryption.PublicKeyPath)
	}
	if cfg.Encryption.PrivateKeyPath != "/data/blogctl/keys/blogctl.key" {
		t.Errorf("Encryption.PrivateKeyPath = %q", cfg.Encryption.PrivateKeyPath)
	}
	if cfg.Journal.Type != "sqlite" || cfg.Journal.DataDir != "/data/blogctl/db" {
		t.Errorf("Journal = %+v", cfg.Journal)
	}
}

func TestConfig_ResolveAPIURL(t *testing.T) {
	tests := []struct {
		name       string
		env        string
		configured string
		want       string
	}{
		{name: "env wins", env: "https://env.example.com/api", configured: "https://cfg.example.com/api", want: "https://env.example.com/api"},
		{name: "config when env unset", configured: "https://cfg.example.com/api", want: "https://cfg.example.com/api"},
		{name: "default", want: DefaultAPIURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(APIURLEnv, tt.env)
			cfg := &Config{APIURL: tt.configured}
			if got := cfg.ResolveAPIURL(); got != tt.want {
				t.Errorf("ResolveAPIURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfig_ResolveAPIURL_DotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("BLOG_API_URL=https://dotenv.example.com/api\n"), 0600); err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	// Register cleanup for the variable godotenv is about to set.
	t.Setenv(APIURLEnv, "")
	os.Unsetenv(APIURLEnv)

	cfg := &Config{APIURL: "https://cfg.example.com/api"}
	if got := cfg.ResolveAPIURL(); got != "https://dotenv.example.com/api" {
		t.Errorf("ResolveAPIURL() = %q, want value from .env", got)
	}
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "blogctl.toml")
		cfg := NewConfig(DefaultAPIURL, dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("config file not created: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("config file mode = %o, want 600", perm)
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "blogctl.toml")
		cfg := NewConfig(DefaultAPIURL, dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}

		err := Init(path, cfg)
		if err == nil {
			t.Fatal("second Init() expected error")
		}
	})
}

func TestReadFromFile(t *testing.T) {
	t.Run("reads valid config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "blogctl.toml")
		cfg := NewConfig("https://read.example.com/api", dir)
		cfg.Journal = JournalConfig{Type: "memory"}

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.APIURL != "https://read.example.com/api" {
			t.Errorf("APIURL = %q, want %q", got.APIURL, "https://read.example.com/api")
		}
		if got.Journal.Type != "memory" {
			t.Errorf("Journal.Type = %q, want memory", got.Journal.Type)
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		_, err := ReadFromFile("/nonexistent/path/blogctl.toml")
		if err == nil {
			t.Fatal("ReadFromFile() expected error for missing file")
		}
	})
}
