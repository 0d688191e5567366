package main

import (
	"fmt"

	"bracelint/internal/project"
)

// loadConfigFor resolves the bracelint.toml for a scan rooted at startDir.
// The returned path is empty when no manifest was found and defaults apply.
func loadConfigFor(startDir string) (project.Config, string, error) {
	cfg, path, err := project.LoadOrDefault(startDir)
	if err != nil {
		return project.Config{}, path, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, path, nil
}
