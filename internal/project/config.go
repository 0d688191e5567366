package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the manifest bracelint looks for, walking up from the
// scan root.
const ConfigFileName = "bracelint.toml"

// ScanConfig controls file discovery and scan behavior.
type ScanConfig struct {
	Extensions   []string `toml:"extensions"`
	Exclude      []string `toml:"exclude"`
	SkipLiterals bool     `toml:"skip_literals"`
}

// OutputConfig controls reporting limits.
type OutputConfig struct {
	MaxDiagnostics int `toml:"max_diagnostics"`
	ContextWidth   int `toml:"context_width"`
}

// Config is the parsed bracelint.toml.
type Config struct {
	Scan   ScanConfig   `toml:"scan"`
	Output OutputConfig `toml:"output"`
}

// DefaultConfig returns the configuration used when no manifest exists.
func DefaultConfig() Config {
	return Config{
		Scan: ScanConfig{
			Extensions: []string{".js", ".ts", ".tsx"},
			Exclude:    []string{"node_modules", ".git", "dist", "build", "coverage"},
		},
		Output: OutputConfig{
			MaxDiagnostics: 100,
			ContextWidth:   120,
		},
	}
}

// FindConfig walks up from startDir to locate bracelint.toml.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadConfig parses the manifest at path. Sections and keys that are absent
// keep their defaults; present keys are validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if meta.IsDefined("scan", "extensions") {
		if len(cfg.Scan.Extensions) == 0 {
			return Config{}, fmt.Errorf("%s: [scan].extensions must not be empty", path)
		}
		for _, ext := range cfg.Scan.Extensions {
			if !strings.HasPrefix(ext, ".") {
				return Config{}, fmt.Errorf("%s: invalid extension %q: must start with '.'", path, ext)
			}
		}
	}
	if cfg.Output.MaxDiagnostics <= 0 {
		return Config{}, fmt.Errorf("%s: [output].max_diagnostics must be positive", path)
	}
	if cfg.Output.ContextWidth < 0 {
		return Config{}, fmt.Errorf("%s: [output].context_width must not be negative", path)
	}

	return cfg, nil
}

// LoadOrDefault resolves the config for a scan rooted at startDir. Returns
// the manifest path when one was found, or "" when defaults apply.
func LoadOrDefault(startDir string) (Config, string, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return DefaultConfig(), "", nil
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}

// DefaultTOML renders the default manifest written by "bracelint init".
func DefaultTOML() string {
	return `[scan]
extensions = [".js", ".ts", ".tsx"]
exclude = ["node_modules", ".git", "dist", "build", "coverage"]
skip_literals = false

[output]
max_diagnostics = 100
context_width = 120
`
}

// ExcludedDir reports whether a directory name is excluded from the walk.
func (c ScanConfig) ExcludedDir(name string) bool {
	for _, ex := range c.Exclude {
		if name == ex {
			return true
		}
	}
	return false
}

// MatchesExtension reports whether path carries one of the scanned extensions.
func (c ScanConfig) MatchesExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.Extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
