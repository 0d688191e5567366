package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"bracelint/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default bracelint.toml",
	Long: `Initialize a project for bracelint by writing a default bracelint.toml
manifest. If [path] is omitted, the current directory is used. If a
non-existing path is provided, the directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit writes the default manifest into the target directory, creating the
// directory when needed and refusing to overwrite an existing manifest.
func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	manifestPath := filepath.Join(target, project.ConfigFileName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	if err := os.WriteFile(manifestPath, []byte(project.DefaultTOML()), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized bracelint project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - %s\n", project.ConfigFileName)
	return nil
}
