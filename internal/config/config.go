package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

const configFileName = "galleryorganizer.toml"

// Stash contains the host server connection used outside the plugin runtime.
type Stash struct {
	URL               string  `toml:"url"`
	APIKey            string  `toml:"api_key"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	// PageSize is the findGalleries page size; -1 fetches every match at once.
	PageSize int `toml:"page_size"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Journal contains configuration for the local run journal.
type Journal struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Rules holds the naming conventions the inference passes rely on.
type Rules struct {
	// ExcludedCategories are bracketed title labels never used for tag inference.
	ExcludedCategories  []string `toml:"excluded_categories"`
	PlatformPrefix      string   `toml:"platform_prefix"`
	PlatformURLTemplate string   `toml:"platform_url_template"`
	StudioBrands        []string `toml:"studio_brands"`
	UncensoredTag       string   `toml:"uncensored_tag"`
}

// Environment controls the external tool checks.
type Environment struct {
	CheckOnStart bool `toml:"check_on_start"`
}

// Config encapsulates all configuration values for galleryorganizer.
//
// Configuration sections by subsystem:
//   - Stash: GraphQL endpoint, credentials, timeouts, and request pacing
//   - Logging: log format, level, and file directory
//   - Journal: SQLite run journal location
//   - Rules: title conventions (excluded categories, platform and studio prefixes)
//   - Environment: optional external tool check before dispatch
type Config struct {
	Stash       Stash       `toml:"stash"`
	Logging     Logging     `toml:"logging"`
	Journal     Journal     `toml:"journal"`
	Rules       Rules       `toml:"rules"`
	Environment Environment `toml:"environment"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/galleryorganizer/config.toml")
}

// Load locates, parses, and validates a configuration file. When path is empty
// the default location is tried first, then galleryorganizer.toml inside each
// of searchDirs (the host passes its plugin directory here), then the working
// directory. The returned config has all path fields expanded and normalized.
func Load(path string, searchDirs ...string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path, searchDirs)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// PluginDirConfigPath returns where Load looks for a config inside the host's
// plugin directory.
func PluginDirConfigPath(pluginDir string) string {
	return filepath.Join(pluginDir, configFileName)
}

func resolveConfigPath(path string, searchDirs []string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	candidates := []string{defaultPath}
	for _, dir := range searchDirs {
		if dir = strings.TrimSpace(dir); dir != "" {
			candidates = append(candidates, PluginDirConfigPath(dir))
		}
	}
	projectPath, err := filepath.Abs(configFileName)
	if err != nil {
		return "", false, err
	}
	candidates = append(candidates, projectPath)

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true, nil
		}
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the journal and log files live in.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Logging.Dir}
	if c.Journal.Enabled && c.Journal.Path != "" {
		dirs = append(dirs, filepath.Dir(c.Journal.Path))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LockPath returns the run lock file location, kept beside the journal.
func (c *Config) LockPath() string {
	dir := c.Logging.Dir
	if c.Journal.Enabled && c.Journal.Path != "" {
		dir = filepath.Dir(c.Journal.Path)
	}
	return filepath.Join(dir, "galleryorganizer.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
