// ABOUTME: Runtime configuration from .env files, BLOCKYARD_* variables and a categories file.
// ABOUTME: Also owns database path defaults and validation shared by every CLI command.

package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/2389/blockyard/internal/blocks"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort  = "9100"
	DefaultModel = "gpt-5-mini"
)

// Config is the resolved runtime configuration.
type Config struct {
	Port           string
	DBPath         string
	Namespace      string
	Uploads        blocks.UploadDir
	CategoriesFile string
	HostCategories []blocks.Category
	OpenAIKey      string
	OpenAIModel    string
}

// Load reads .env files and the environment. Variables already set in the
// environment win over .env values.
func Load() (*Config, error) {
	LoadEnvFiles()

	port := Getenv("BLOCKYARD_PORT", DefaultPort)
	cfg := &Config{
		Port:      port,
		DBPath:    DefaultDBPath(),
		Namespace: Getenv("BLOCKYARD_NAMESPACE", blocks.DefaultNamespace),
		Uploads: blocks.UploadDir{
			BaseURL: Getenv("BLOCKYARD_UPLOAD_URL", "http://localhost:"+port+"/uploads"),
			BaseDir: Getenv("BLOCKYARD_UPLOAD_DIR", "uploads"),
		},
		CategoriesFile: os.Getenv("BLOCKYARD_CATEGORIES_FILE"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    Getenv("OPENAI_MODEL", DefaultModel),
	}

	if strings.Contains(cfg.Namespace, "/") || strings.TrimSpace(cfg.Namespace) == "" {
		return nil, fmt.Errorf("BLOCKYARD_NAMESPACE %q must be a non-empty name without '/'", cfg.Namespace)
	}

	categories, err := LoadHostCategories(cfg.CategoriesFile)
	if err != nil {
		return nil, err
	}
	cfg.HostCategories = categories
	return cfg, nil
}

// LoadEnvFiles loads the first .env found in the current or parent
// directories, then ~/.env. Missing files are ignored.
func LoadEnvFiles() {
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		godotenv.Load(filepath.Join(home, ".env"))
	}
}

type categoriesFile struct {
	Categories []blocks.Category `yaml:"categories"`
}

// LoadHostCategories reads the host category list from a YAML file. An empty
// path returns the built-in list.
func LoadHostCategories(path string) ([]blocks.Category, error) {
	if path == "" {
		return blocks.HostCategories(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}
	var file categoriesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse categories file %s: %w", path, err)
	}
	seen := make(map[string]bool)
	for i, c := range file.Categories {
		if c.Slug == "" {
			return nil, fmt.Errorf("categories file %s: entry %d has no slug", path, i)
		}
		if seen[c.Slug] {
			return nil, fmt.Errorf("categories file %s: duplicate slug %q", path, c.Slug)
		}
		seen[c.Slug] = true
	}
	return file.Categories, nil
}

// Getenv returns the value of key, or fallback when unset or empty.
func Getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// ValidateDBPath validates and cleans a database path.
// Handles Unix/Linux, macOS, and Windows paths (including UNC and drive letters).
func ValidateDBPath(path string) (string, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return "", fmt.Errorf("database path cannot be empty, '.', or '/'")
	}
	cleanPath = filepath.Clean(cleanPath)

	// Reject root-like paths
	if cleanPath == "." || cleanPath == "/" {
		return "", fmt.Errorf("database path cannot be empty, '.', or '/'")
	}

	// Windows: reject bare drive letters (e.g., "C:", "D:")
	if runtime.GOOS == "windows" && len(cleanPath) == 2 && cleanPath[1] == ':' {
		return "", fmt.Errorf("database path cannot be a bare drive letter")
	}

	// Check for path traversal attempts
	if strings.Contains(cleanPath, "..") {
		return "", fmt.Errorf("database path cannot contain '..'")
	}

	badPatterns := []string{
		".git",
		".svn",
		"node_modules",
		".env",
		"credentials",
		"secret",
	}
	lowerPath := strings.ToLower(cleanPath)
	for _, pattern := range badPatterns {
		if strings.Contains(lowerPath, pattern) {
			return "", fmt.Errorf("database path cannot contain '%s' directory", pattern)
		}
	}

	return cleanPath, nil
}

// DefaultDBPath returns the default database path following XDG base directory conventions.
// Priority: BLOCKYARD_DB_PATH env var > ./blockyard.db > XDG_DATA_HOME/blockyard/blockyard.db
func DefaultDBPath() string {
	if envPath := strings.TrimSpace(os.Getenv("BLOCKYARD_DB_PATH")); envPath != "" {
		envPath = filepath.Clean(envPath)
		if envPath == "." {
			log.Printf("Warning: BLOCKYARD_DB_PATH is invalid (empty or '.'), using default path")
		} else {
			return envPath
		}
	}

	cwdPath := "./blockyard.db"
	if _, err := os.Stat(cwdPath); err == nil {
		return cwdPath
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil || homeDir == "" || homeDir == "/" {
			log.Printf("Warning: Could not determine valid home directory (%q): %v, using %s", homeDir, err, cwdPath)
			return cwdPath
		}
		if runtime.GOOS == "windows" {
			dataHome = os.Getenv("LOCALAPPDATA")
			if dataHome == "" {
				dataHome = filepath.Join(homeDir, "AppData", "Local")
			}
		} else {
			dataHome = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(dataHome, "blockyard")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Printf("Warning: Could not create data directory %s: %v, using %s", dataDir, err, cwdPath)
		return cwdPath
	}

	// Only log in debug mode to avoid polluting --help output
	if os.Getenv("BLOCKYARD_DEBUG") != "" {
		log.Printf("Using database location: %s", filepath.Join(dataDir, "blockyard.db"))
	}
	return filepath.Join(dataDir, "blockyard.db")
}
