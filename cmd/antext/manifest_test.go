package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindAntextTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	manifest := filepath.Join(root, "antext.toml")
	if err := os.WriteFile(manifest, []byte("[package]\nname = \"x\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, ok, err := findAntextToml(nested)
	if err != nil || !ok {
		t.Fatalf("found=%q ok=%v err=%v", found, ok, err)
	}
	if found != manifest {
		t.Errorf("found = %q, want %q", found, manifest)
	}
}

func TestFindAntextTomlMissing(t *testing.T) {
	_, ok, err := findAntextToml(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("manifest found in empty dir")
	}
}

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "antext.toml")
	content := `[package]
name = "duets"

[captions]
dir = "songs"
roster = ["mia", "sebastian"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Package.Name != "duets" {
		t.Errorf("name = %q", cfg.Package.Name)
	}
	if cfg.Captions.Dir != "songs" || len(cfg.Captions.Roster) != 2 {
		t.Errorf("captions = %+v", cfg.Captions)
	}
}

func TestLoadProjectConfigMissingName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "antext.toml")
	if err := os.WriteFile(path, []byte("[captions]\nroster = []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadProjectConfig(path); err == nil {
		t.Error("config without [package] accepted")
	}
}

func TestBuildDefaultManifestParses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "antext.toml")
	content := buildDefaultManifest("stars", []string{"mia", "sebastian"})
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Package.Name != "stars" || len(cfg.Captions.Roster) != 2 {
		t.Errorf("cfg = %+v", cfg)
	}
}
