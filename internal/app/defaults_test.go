package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name string
		env  map[string]string
		want Paths
	}{
		{
			name: "blogctl env vars win",
			env: map[string]string{
				"BLOG_CONFIG_PATH": "/custom/blogctl.toml",
				"BLOG_HOME":        "/custom/blogctl",
				"XDG_CONFIG_HOME":  "/xdg/config",
				"XDG_DATA_HOME":    "/xdg/data",
			},
			want: Paths{ConfigPath: "/custom/blogctl.toml", BaseDir: "/custom/blogctl", LogDir: "/custom/blogctl/log"},
		},
		{
			name: "xdg dirs",
			env:  map[string]string{"XDG_CONFIG_HOME": "/xdg/config", "XDG_DATA_HOME": "/xdg/data"},
			want: Paths{ConfigPath: "/xdg/config/blogctl.toml", BaseDir: "/xdg/data/blogctl", LogDir: "/xdg/data/blogctl/log"},
		},
		{
			name: "home dir fallback",
			want: Paths{
				ConfigPath: filepath.Join(home, ".config", "blogctl.toml"),
				BaseDir:    filepath.Join(home, ".local", "share", "blogctl"),
				LogDir:     filepath.Join(home, ".local", "share", "blogctl", "log"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"BLOG_CONFIG_PATH", "BLOG_HOME", "XDG_CONFIG_HOME", "XDG_DATA_HOME"} {
				t.Setenv(k, tt.env[k])
			}

			got, err := GetDefaults()
			if err != nil {
				t.Fatalf("GetDefaults() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("GetDefaults() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
