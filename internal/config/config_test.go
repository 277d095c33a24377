// ABOUTME: Tests for configuration loading, host categories and database path handling.
// ABOUTME: Uses t.Setenv and temp dirs so no real environment leaks in.

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BLOCKYARD_DB_PATH", filepath.Join(t.TempDir(), "test.db"))
	t.Setenv("BLOCKYARD_PORT", "")
	t.Setenv("BLOCKYARD_NAMESPACE", "")
	t.Setenv("BLOCKYARD_UPLOAD_URL", "")
	t.Setenv("BLOCKYARD_UPLOAD_DIR", "")
	t.Setenv("BLOCKYARD_CATEGORIES_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %s, want %s", cfg.Port, DefaultPort)
	}
	if cfg.Namespace != "acf" {
		t.Errorf("Namespace = %s, want acf", cfg.Namespace)
	}
	if cfg.Uploads.BaseURL != "http://localhost:9100/uploads" {
		t.Errorf("Uploads.BaseURL = %s", cfg.Uploads.BaseURL)
	}
	if len(cfg.HostCategories) == 0 {
		t.Error("expected built-in host categories")
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "custom.db")
	t.Setenv("BLOCKYARD_DB_PATH", dbPath)
	t.Setenv("BLOCKYARD_PORT", "8088")
	t.Setenv("BLOCKYARD_NAMESPACE", "site")
	t.Setenv("BLOCKYARD_UPLOAD_URL", "https://cdn.example.com/uploads")
	t.Setenv("BLOCKYARD_UPLOAD_DIR", "/srv/uploads")
	t.Setenv("BLOCKYARD_CATEGORIES_FILE", "")
	t.Setenv("OPENAI_MODEL", "gpt-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "8088" || cfg.Namespace != "site" || cfg.DBPath != dbPath {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Uploads.BaseURL != "https://cdn.example.com/uploads" || cfg.Uploads.BaseDir != "/srv/uploads" {
		t.Errorf("Uploads = %+v", cfg.Uploads)
	}
	if cfg.OpenAIModel != "gpt-test" {
		t.Errorf("OpenAIModel = %s", cfg.OpenAIModel)
	}
}

func TestLoad_RejectsNamespaceWithSlash(t *testing.T) {
	t.Setenv("BLOCKYARD_DB_PATH", filepath.Join(t.TempDir(), "test.db"))
	t.Setenv("BLOCKYARD_NAMESPACE", "a/b")

	if _, err := Load(); err == nil {
		t.Error("Load() error = nil, want error for namespace with '/'")
	}
}

func TestLoadHostCategories(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.yaml")
	os.WriteFile(valid, []byte(`categories:
  - slug: text
    title: Text
  - slug: layout
    title: Layout
    icon: columns
    position: 3
`), 0644)

	cats, err := LoadHostCategories(valid)
	if err != nil {
		t.Fatalf("LoadHostCategories() error = %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("got %d categories, want 2", len(cats))
	}
	if cats[1].Slug != "layout" || cats[1].Icon != "columns" || cats[1].Position != 3 {
		t.Errorf("cats[1] = %+v", cats[1])
	}

	builtIn, err := LoadHostCategories("")
	if err != nil || len(builtIn) == 0 {
		t.Errorf("LoadHostCategories(\"\") = %v, %v", builtIn, err)
	}
}

func TestLoadHostCategories_Invalid(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name          string
		content       string
		shouldContain string
	}{
		{"missing slug", "categories:\n  - title: Text\n", "has no slug"},
		{"duplicate slug", "categories:\n  - slug: a\n    title: A\n  - slug: a\n    title: B\n", "duplicate slug"},
		{"not yaml", "categories: [unclosed\n", "parse categories file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml")
			os.WriteFile(path, []byte(tt.content), 0644)

			_, err := LoadHostCategories(path)
			if err == nil {
				t.Fatal("LoadHostCategories() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.shouldContain) {
				t.Errorf("error = %v, should contain %q", err, tt.shouldContain)
			}
		})
	}

	if _, err := LoadHostCategories(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidateDBPath_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"simple relative path", "blockyard.db"},
		{"path with directory", "./data/blockyard.db"},
		{"path with multiple directories", "./path/to/data/blockyard.db"},
		{"absolute path on Unix", "/tmp/blockyard.db"},
		{"path with whitespace trimmed", "  blockyard.db  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateDBPath(tt.input)
			if err != nil {
				t.Errorf("ValidateDBPath(%q) error = %v, want nil", tt.input, err)
			}
			if result == "" {
				t.Errorf("ValidateDBPath(%q) returned empty string", tt.input)
			}
		})
	}
}

func TestValidateDBPath_Invalid(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		shouldContain string
	}{
		{"empty string", "", "cannot be empty"},
		{"current directory dot", ".", "cannot be empty, '.', or '/'"},
		{"root directory", "/", "cannot be empty, '.', or '/'"},
		{"path traversal with dotdot", "../../etc/passwd", "cannot contain '..'"},
		{"dotdot in middle", "./data/../../../etc/passwd", "cannot contain '..'"},
		{"git directory blocked", ".git/blockyard.db", ".git"},
		{"node_modules directory blocked", "node_modules/blockyard.db", "node_modules"},
		{"secret in path blocked", "secret/blockyard.db", "secret"},
		{".env in path blocked", ".env/blockyard.db", ".env"},
		{"case insensitive bad pattern", "CREDENTIALS/blockyard.db", "credentials"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateDBPath(tt.input)
			if err == nil {
				t.Fatalf("ValidateDBPath(%q) error = nil, want error", tt.input)
			}
			if !strings.Contains(err.Error(), tt.shouldContain) {
				t.Errorf("ValidateDBPath(%q) error = %v, should contain %q", tt.input, err, tt.shouldContain)
			}
		})
	}
}

func TestValidateDBPath_Windows(t *testing.T) {
	if runtime.GOOS != "windows" {
		t.Skip("Windows-specific test")
	}
	if _, err := ValidateDBPath("C:"); err == nil {
		t.Error("bare drive letter should be rejected")
	}
	if _, err := ValidateDBPath("C:\\data\\blockyard.db"); err != nil {
		t.Errorf("absolute Windows path rejected: %v", err)
	}
}

func TestDefaultDBPath(t *testing.T) {
	t.Setenv("BLOCKYARD_DB_PATH", "  /tmp/from-env.db ")
	if got := DefaultDBPath(); got != "/tmp/from-env.db" {
		t.Errorf("DefaultDBPath() = %s, want /tmp/from-env.db", got)
	}

	dataHome := t.TempDir()
	t.Setenv("BLOCKYARD_DB_PATH", "")
	t.Setenv("XDG_DATA_HOME", dataHome)
	want := filepath.Join(dataHome, "blockyard", "blockyard.db")
	if _, err := os.Stat("./blockyard.db"); err == nil {
		t.Skip("./blockyard.db exists in the test directory")
	}
	if got := DefaultDBPath(); got != want {
		t.Errorf("DefaultDBPath() = %s, want %s", got, want)
	}
}
