package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const noManifestMessage = "no catalyst.toml found\nplease specify the sources explicitly, e.g.:\n  catalyst translate path/to/file.py"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Build   buildConfig   `toml:"build"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type buildConfig struct {
	// Src is the directory holding the Python sources, relative to the
	// manifest.
	Src string `toml:"src"`
	// Out is the directory the generated C++ lands in.
	Out string `toml:"out"`
	// Indent overrides the generated indentation unit.
	Indent string `toml:"indent"`
	// Jobs caps the parallel workers; the --jobs flag wins when set.
	Jobs int `toml:"jobs"`
}

func findCatalystToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "catalyst.toml")
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

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findCatalystToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if strings.TrimSpace(cfg.Build.Src) == "" {
		cfg.Build.Src = "."
	}
	if strings.TrimSpace(cfg.Build.Out) == "" {
		cfg.Build.Out = "out"
	}
	return cfg, nil
}

// srcDir resolves the manifest's source directory against its root.
func (m *projectManifest) srcDir() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Build.Src))
}

// outDir resolves the manifest's output directory against its root.
func (m *projectManifest) outDir() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Build.Out))
}
