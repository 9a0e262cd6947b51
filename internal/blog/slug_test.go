package blog

import "testing"

func TestDeriveSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple words", in: "Hello World", want: "hello-world"},
		{name: "punctuation runs collapse", in: "Go, Rust & Zig!!", want: "go-rust-zig"},
		{name: "leading and trailing separators", in: "  --Tips--  ", want: "tips"},
		{name: "digits kept", in: "Top 10 Tools 2024", want: "top-10-tools-2024"},
		{name: "non ascii letters become separators", in: "Café Society", want: "caf-society"},
		{name: "already a slug", in: "already-a-slug", want: "already-a-slug"},
		{name: "only symbols", in: "!!!", want: ""},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveSlug(tt.in); got != tt.want {
				t.Errorf("DeriveSlug(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDeriveSlug_Idempotent(t *testing.T) {
	inputs := []string{
		"Hello World",
		"__init__",
		"a--b",
		"-x-",
		"Ünïcödé Tïtle",
		"2024: A Year in Review",
		"   ",
		"MiXeD-CaSe_and.dots",
	}

	for _, in := range inputs {
		once := DeriveSlug(in)
		twice := DeriveSlug(once)
		if once != twice {
			t.Errorf("DeriveSlug not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestValidSlug(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"hello-world", true},
		{"abc123", true},
		{"-", true},
		{"Hello", false},
		{"with space", false},
		{"under_score", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidSlug(tt.in); got != tt.want {
			t.Errorf("ValidSlug(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	// Every non-empty derived slug is valid.
	for _, in := range []string{"Hello World", "Top 10", "x"} {
		if s := DeriveSlug(in); !ValidSlug(s) {
			t.Errorf("DeriveSlug(%q) = %q is not a valid slug", in, s)
		}
	}
}
