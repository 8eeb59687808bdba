package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/appforge/appforge/internal/models"
	"gopkg.in/yaml.v3"
)

// Storage handles all file system operations for guidance templates.
// Template bodies live under <root>/templates as markdown files with
// optional YAML frontmatter, addressed by convention:
//
//	<archetype>/main-prompt.md   primary body
//	<archetype>/<slug>.md        variant body
//	base/main-prompt.md          generic fallback
//
// Files on disk win over the embedded defaults, so users can override any
// template by editing their library.
type Storage struct {
	rootPath string
}

// NewStorage creates a new storage instance rooted at rootPath, falling back
// to $APPFORGE_DIR and then ~/.appforge.
func NewStorage(rootPath string) (*Storage, error) {
	if rootPath == "" {
		rootPath = os.Getenv("APPFORGE_DIR")
	}
	if rootPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		rootPath = filepath.Join(homeDir, ".appforge")
	}

	return &Storage{rootPath: rootPath}, nil
}

// RootPath returns the library root directory.
func (s *Storage) RootPath() string {
	return s.rootPath
}

// templatePath resolves a conventional template path to its on-disk location.
func (s *Storage) templatePath(path string) string {
	return filepath.Join(s.rootPath, "templates", filepath.FromSlash(path))
}

// InitLibrary creates the library directory structure and writes the
// embedded default templates. Existing files are left alone so user edits
// survive re-initialization.
func (s *Storage) InitLibrary() error {
	dirs := []string{
		s.rootPath,
		filepath.Join(s.rootPath, "templates"),
		filepath.Join(s.rootPath, ".appforge"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	for _, path := range defaultTemplatePaths() {
		fullPath := s.templatePath(path)
		if _, err := os.Stat(fullPath); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
		data, err := defaultTemplate(path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(fullPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write template %s: %w", path, err)
		}
	}

	return nil
}

// Exists reports whether a template body is available at the conventional
// path, either on disk or among the embedded defaults.
func (s *Storage) Exists(path string) bool {
	if _, err := os.Stat(s.templatePath(path)); err == nil {
		return true
	}
	return hasDefaultTemplate(path)
}

// ReadBody returns the template body at the conventional path with any
// frontmatter stripped. Disk content wins over embedded defaults.
func (s *Storage) ReadBody(path string) (string, error) {
	raw, err := s.readRaw(path)
	if err != nil {
		return "", err
	}
	_, body := splitFrontmatter(raw)
	return string(body), nil
}

// LoadVariant reads a variant file, decoding its YAML frontmatter into the
// variant metadata. A file without frontmatter yields a variant with only
// defaults filled in.
func (s *Storage) LoadVariant(path string) (*models.TemplateVariant, error) {
	raw, err := s.readRaw(path)
	if err != nil {
		return nil, err
	}

	variant := &models.TemplateVariant{
		TargetAudience: models.AudienceIntermediate,
		Focus:          models.FocusImplementation,
		Weight:         models.WeightDefault,
	}

	front, _ := splitFrontmatter(raw)
	if len(front) > 0 {
		if err := yaml.Unmarshal(front, variant); err != nil {
			return nil, fmt.Errorf("failed to parse variant frontmatter: %w", err)
		}
	}

	if variant.ID == "" {
		variant.ID = strings.TrimSuffix(filepath.Base(path), ".md")
	}
	if variant.Weight == 0 {
		variant.Weight = models.WeightDefault
	}
	variant.BodyPath = path

	return variant, nil
}

// LoadDescription reads the frontmatter description of a template body,
// returning "" when the file carries none.
func (s *Storage) LoadDescription(path string) string {
	raw, err := s.readRaw(path)
	if err != nil {
		return ""
	}
	front, _ := splitFrontmatter(raw)
	if len(front) == 0 {
		return ""
	}
	var meta struct {
		Description string `yaml:"description"`
	}
	if err := yaml.Unmarshal(front, &meta); err != nil {
		return ""
	}
	return meta.Description
}

// ListVariantPaths returns the conventional paths of all variant files for
// an archetype, sorted for deterministic registration order. The primary
// main-prompt.md body is not a variant and is excluded.
func (s *Storage) ListVariantPaths(archetype string) []string {
	seen := make(map[string]bool)

	dir := filepath.Join(s.rootPath, "templates", archetype)
	if entries, err := os.ReadDir(dir); err == nil {
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, ".md") || name == "main-prompt.md" {
				continue
			}
			seen[archetype+"/"+name] = true
		}
	}

	for _, path := range defaultVariantPaths(archetype) {
		seen[path] = true
	}

	paths := make([]string, 0, len(seen))
	for path := range seen {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// readRaw reads the full file content, disk first, embedded defaults second.
func (s *Storage) readRaw(path string) ([]byte, error) {
	data, err := os.ReadFile(s.templatePath(path))
	if err == nil {
		return data, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read template %s: %w", path, err)
	}
	return defaultTemplate(path)
}

// splitFrontmatter separates YAML frontmatter from the markdown body.
// Content without a leading "---" line is all body.
func splitFrontmatter(raw []byte) (front, body []byte) {
	delim := []byte("---\n")
	if !bytes.HasPrefix(raw, delim) {
		return nil, raw
	}
	rest := raw[len(delim):]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return nil, raw
	}
	front = rest[:end+1]
	body = rest[end+len("\n---"):]
	body = bytes.TrimPrefix(body, []byte("\n"))
	return front, body
}
