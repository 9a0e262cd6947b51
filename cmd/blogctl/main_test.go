package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"blogctl/internal/blog"
	"blogctl/internal/config"
	"blogctl/internal/testutil"
)

// run executes the root command with args and returns its stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_EndToEnd(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	fake.AddUser("admin@example.com", "s3cret", blog.RoleAdmin)
	fake.AddPost(blog.Post{Title: "Hello", Slug: "hello", Status: blog.PostPublished, Content: "<p>Hi <b>there</b></p>"})

	home := t.TempDir()
	t.Setenv("BLOG_HOME", home)
	t.Setenv("BLOG_CONFIG_PATH", filepath.Join(home, "blogctl.toml"))
	t.Setenv(config.APIURLEnv, "")

	if _, err := run(t, "", "config", "init", "--api-url", fake.URL()); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, "keys", "blogctl.key")); err != nil {
		t.Errorf("config init did not create the age identity: %v", err)
	}

	out, err := run(t, "s3cret\n", "login", "--email", "admin@example.com")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "Logged in as admin@example.com (ADMIN)") {
		t.Errorf("login output = %q", out)
	}

	raw, err := os.ReadFile(filepath.Join(home, "session", "auth_token"))
	if err != nil {
		t.Fatalf("token file: %v", err)
	}
	if bytes.Contains(raw, []byte("token")) {
		t.Error("token file holds the token in plain text")
	}

	out, err = run(t, "", "posts", "show", "hello")
	if err != nil {
		t.Fatalf("posts show: %v", err)
	}
	if !strings.Contains(out, "Hi there") {
		t.Errorf("posts show output = %q, want plain text content", out)
	}

	out, err = run(t, "", "categories", "create", "Go Tips & Tricks")
	if err != nil {
		t.Fatalf("categories create: %v", err)
	}
	if !strings.Contains(out, "go-tips-tricks") {
		t.Errorf("categories create output = %q", out)
	}

	out, err = run(t, "", "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "categories.create") || !strings.Contains(out, "login") {
		t.Errorf("history output = %q", out)
	}

	if _, err := run(t, "", "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	_, err = run(t, "", "whoami")
	if !blog.IsKind(err, blog.KindAuth) {
		t.Errorf("whoami after logout error = %v, want auth error", err)
	}
}

func TestListParams(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	addListFlags(cmd, "status", "search")
	if err := cmd.ParseFlags([]string{"--page", "2", "--status", "published", "--search", "go"}); err != nil {
		t.Fatal(err)
	}

	p := listParams(cmd)
	if p.Page != 2 || p.Limit != 0 || p.Status != "PUBLISHED" || p.Search != "go" || p.Tag != "" {
		t.Errorf("listParams() = %+v", p)
	}
}

func TestPostUpdateInput_OnlyChangedFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	addPostFlags(cmd)
	if err := cmd.ParseFlags([]string{"--title", "New", "--status", "published", "--tag-id", "t1", "--tag-id", "t2"}); err != nil {
		t.Fatal(err)
	}

	in, err := postUpdateInput(cmd)
	if err != nil {
		t.Fatalf("postUpdateInput() error = %v", err)
	}
	if in.Title == nil || *in.Title != "New" {
		t.Errorf("Title = %v, want New", in.Title)
	}
	if in.Status == nil || *in.Status != blog.PostPublished {
		t.Errorf("Status = %v, want PUBLISHED", in.Status)
	}
	if in.TagIDs == nil || strings.Join(*in.TagIDs, ",") != "t1,t2" {
		t.Errorf("TagIDs = %v", in.TagIDs)
	}
	if in.Slug != nil || in.Content != nil || in.Excerpt != nil || in.CategoryIDs != nil {
		t.Errorf("unset flags were sent: %+v", in)
	}
}

func TestPostCreateInput_ContentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "post.html")
	if err := os.WriteFile(path, []byte("<p>from file</p>"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := &cobra.Command{Use: "x"}
	addPostFlags(cmd)
	if err := cmd.ParseFlags([]string{"--title", "T", "--content-file", path}); err != nil {
		t.Fatal(err)
	}
	in, err := postCreateInput(cmd)
	if err != nil {
		t.Fatalf("postCreateInput() error = %v", err)
	}
	if in.Content != "<p>from file</p>" {
		t.Errorf("Content = %q", in.Content)
	}
}

func TestPostCreateInput_RequiresTitle(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	addPostFlags(cmd)
	if _, err := postCreateInput(cmd); !blog.IsKind(err, blog.KindValidation) {
		t.Errorf("postCreateInput() error = %v, want validation error", err)
	}
}

func TestReadLine_SharedBuffer(t *testing.T) {
	in := strings.NewReader("first\r\nsecond\nthird")
	for _, want := range []string{"first", "second", "third"} {
		got, err := readLine(in)
		if err != nil {
			t.Fatalf("readLine() error = %v", err)
		}
		if got != want {
			t.Errorf("readLine() = %q, want %q", got, want)
		}
	}
	if _, err := readLine(in); err == nil {
		t.Error("readLine() at EOF should fail")
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := humanSize(tt.n); got != tt.want {
			t.Errorf("humanSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
