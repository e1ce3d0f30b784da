package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package  packageConfig  `toml:"package"`
	Captions captionsConfig `toml:"captions"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type captionsConfig struct {
	// Roster дополняет [meta/roster/...] в самих файлах.
	Roster []string `toml:"roster"`
	// Dir — каталог с *.antx, по умолчанию корень проекта.
	Dir string `toml:"dir"`
}

func findAntextToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "antext.toml")
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
	manifestPath, ok, err := findAntextToml(startDir)
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
	return cfg, nil
}

// manifestRoster returns the roster from the nearest manifest, if any.
// Отсутствие манифеста — не ошибка: файлы разбираются и без проекта.
func manifestRoster(startDir string) ([]string, error) {
	manifest, ok, err := loadProjectManifest(startDir)
	if err != nil || !ok {
		return nil, err
	}
	return manifest.Config.Captions.Roster, nil
}

// captionsDir resolves the directory a project-wide command should scan.
func captionsDir(manifest *projectManifest) string {
	dir := strings.TrimSpace(manifest.Config.Captions.Dir)
	if dir == "" {
		return manifest.Root
	}
	return filepath.Join(manifest.Root, filepath.FromSlash(dir))
}
