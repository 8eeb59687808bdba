package storage

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Default template bodies shipped with the binary. InitLibrary copies them
// into the user's library; reads fall back to them when no file exists.
//
//go:embed defaults
var defaultsFS embed.FS

// defaultTemplate returns the embedded content for a conventional path.
func defaultTemplate(name string) ([]byte, error) {
	data, err := defaultsFS.ReadFile(path.Join("defaults", name))
	if err != nil {
		return nil, fmt.Errorf("no template at %s: %w", name, err)
	}
	return data, nil
}

// hasDefaultTemplate reports whether an embedded default exists for the path.
func hasDefaultTemplate(name string) bool {
	_, err := defaultsFS.ReadFile(path.Join("defaults", name))
	return err == nil
}

// defaultTemplatePaths lists every embedded template's conventional path.
func defaultTemplatePaths() []string {
	var paths []string
	fs.WalkDir(defaultsFS, "defaults", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		paths = append(paths, strings.TrimPrefix(p, "defaults/"))
		return nil
	})
	sort.Strings(paths)
	return paths
}

// defaultVariantPaths lists the embedded variant files for an archetype.
func defaultVariantPaths(archetype string) []string {
	var paths []string
	entries, err := fs.ReadDir(defaultsFS, path.Join("defaults", archetype))
	if err != nil {
		return nil
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") || name == "main-prompt.md" {
			continue
		}
		paths = append(paths, archetype+"/"+name)
	}
	sort.Strings(paths)
	return paths
}
