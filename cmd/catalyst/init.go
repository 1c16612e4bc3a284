package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new catalyst project",
	Long: `Initialize a new catalyst project by creating a project manifest
(catalyst.toml) and a hello-world source file (main.py). If [path|name] is
omitted, initializes the current directory. If a non-existing name is
provided, a directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit initializes a project at the target path (or the current working
// directory when no argument or "." is provided) by creating a
// catalyst.toml manifest and a main.py entry file.
func runInit(cmd *cobra.Command, args []string) error {
	// Resolve target directory
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

	// Ensure directory exists
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

	// Determine project name from directory basename
	name := filepath.Base(target)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "catalyst-project"
	}

	// Create manifest file if not exists
	manifestPath := filepath.Join(target, "catalyst.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	manifest := buildDefaultManifest(name)
	if err := os.WriteFile(manifestPath, []byte(manifest), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	// Create main.py if not exists
	mainPath := filepath.Join(target, "main.py")
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMainPy()), 0o600); err != nil {
			return fmt.Errorf("failed to write main.py: %w", err)
		}
		createdMain = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized catalyst project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - catalyst.toml\n")
	if createdMain {
		fmt.Fprintf(os.Stdout, "  - main.py\n")
	} else {
		fmt.Fprintf(os.Stdout, "  - main.py (existing)\n")
	}
	return nil
}

// buildDefaultManifest returns a minimal TOML manifest for a catalyst
// project using the provided package name.
func buildDefaultManifest(name string) string {
	// Minimal TOML manifest used as a project marker.
	return fmt.Sprintf(`# Catalyst project manifest
[package]
name = "%s"
version = "0.1.0"

[build]
src = "."
out = "out"
`, name)
}

// defaultMainPy returns the placeholder source used when initializing a
// new project. It exercises functions, typing and a loop so the first
// build shows real output.
func defaultMainPy() string {
	return `def greet(name="world"):
    return "Hello, " + name + "!"

for i in range(3):
    print(greet())
`
}
