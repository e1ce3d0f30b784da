package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"antext/internal/doc"
	"antext/internal/format"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new caption project",
	Long: `Initialize a new caption project by creating a project manifest
(antext.toml) and a demo caption file (demo.antx). If [path|name] is
omitted, initializes the current directory. If a non-existing name is
provided, a directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit initializes a caption project at the specified target path (or the
// current working directory when no argument or "." is provided) by creating
// an antext.toml manifest and a demo.antx starter file.
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
		// treat as path or name relative to cwd
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
		name = "antext-project"
	}

	// Create manifest file if not exists
	manifestPath := filepath.Join(target, "antext.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	demo := doc.Demo()
	if err := os.WriteFile(manifestPath, []byte(buildDefaultManifest(name, demo.Roster())), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	// Create demo.antx if not exists
	demoPath := filepath.Join(target, "demo.antx")
	createdDemo := false
	if _, err := os.Stat(demoPath); errors.Is(err, os.ErrNotExist) {
		content, err := format.Marshal(demo)
		if err != nil {
			return fmt.Errorf("failed to render demo: %w", err)
		}
		if err := os.WriteFile(demoPath, content, 0o600); err != nil {
			return fmt.Errorf("failed to write demo.antx: %w", err)
		}
		createdDemo = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Initialized caption project in %s\n", rel)
	fmt.Fprintf(cmd.OutOrStdout(), "  - antext.toml\n")
	if createdDemo {
		fmt.Fprintf(cmd.OutOrStdout(), "  - demo.antx\n")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "  - demo.antx (existing)\n")
	}
	return nil
}

// buildDefaultManifest returns a minimal TOML manifest for a caption
// project using the provided package name and starter roster.
func buildDefaultManifest(name string, roster []string) string {
	var quoted []string
	for _, id := range roster {
		quoted = append(quoted, fmt.Sprintf("%q", id))
	}
	return fmt.Sprintf(`# antext project manifest
[package]
name = "%s"
version = "0.1.0"

[captions]
dir = "."
roster = [%s]
`, name, strings.Join(quoted, ", "))
}
