package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/appforge/appforge/internal/models"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	store, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	return store
}

func TestEmbeddedDefaultsAvailableWithoutInit(t *testing.T) {
	store := newTestStorage(t)

	if !store.Exists("ecommerce/main-prompt.md") {
		t.Error("expected embedded ecommerce primary body to exist")
	}
	if !store.Exists("base/main-prompt.md") {
		t.Error("expected embedded base fallback body to exist")
	}
	if store.Exists("spaceship/main-prompt.md") {
		t.Error("unknown archetype should not exist")
	}

	body, err := store.ReadBody("ecommerce/main-prompt.md")
	if err != nil {
		t.Fatalf("failed to read embedded body: %v", err)
	}
	if !strings.Contains(body, "{{project_name}}") {
		t.Error("expected body to reference project_name")
	}
	if strings.Contains(body, "---\nid:") {
		t.Error("expected frontmatter stripped from body")
	}
}

func TestInitLibraryWritesDefaults(t *testing.T) {
	store := newTestStorage(t)

	if err := store.InitLibrary(); err != nil {
		t.Fatalf("InitLibrary failed: %v", err)
	}

	for _, archetype := range models.Archetypes() {
		path := filepath.Join(store.RootPath(), "templates", archetype, "main-prompt.md")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s primary body on disk: %v", archetype, err)
		}
	}
}

func TestDiskOverrideWinsOverEmbedded(t *testing.T) {
	store := newTestStorage(t)

	dir := filepath.Join(store.RootPath(), "templates", "blog")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	custom := "# My custom blog guide for {{project_name}}\n"
	if err := os.WriteFile(filepath.Join(dir, "main-prompt.md"), []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}

	body, err := store.ReadBody("blog/main-prompt.md")
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if body != custom {
		t.Errorf("expected disk override to win, got %q", body)
	}
}

func TestInitLibraryPreservesUserEdits(t *testing.T) {
	store := newTestStorage(t)

	if err := store.InitLibrary(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(store.RootPath(), "templates", "blog", "main-prompt.md")
	custom := "edited by user\n"
	if err := os.WriteFile(path, []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}

	if err := store.InitLibrary(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != custom {
		t.Error("re-initialization overwrote a user-edited template")
	}
}

func TestLoadVariantFrontmatter(t *testing.T) {
	store := newTestStorage(t)

	variant, err := store.LoadVariant("ecommerce/expert-architecture.md")
	if err != nil {
		t.Fatalf("failed to load variant: %v", err)
	}

	if variant.ID != "ecommerce-expert-architecture" {
		t.Errorf("unexpected variant id %q", variant.ID)
	}
	if variant.TargetAudience != models.AudienceExpert {
		t.Errorf("expected expert audience, got %q", variant.TargetAudience)
	}
	if variant.Focus != models.FocusArchitecture {
		t.Errorf("expected architecture focus, got %q", variant.Focus)
	}
	if variant.Weight != models.WeightDefault {
		t.Errorf("expected default weight, got %v", variant.Weight)
	}
	if variant.BodyPath != "ecommerce/expert-architecture.md" {
		t.Errorf("unexpected body path %q", variant.BodyPath)
	}
}

func TestLoadVariantWithoutFrontmatterUsesDefaults(t *testing.T) {
	store := newTestStorage(t)

	dir := filepath.Join(store.RootPath(), "templates", "portfolio")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "plain.md"), []byte("no frontmatter here\n"), 0644); err != nil {
		t.Fatal(err)
	}

	variant, err := store.LoadVariant("portfolio/plain.md")
	if err != nil {
		t.Fatalf("failed to load variant: %v", err)
	}
	if variant.ID != "plain" {
		t.Errorf("expected id derived from filename, got %q", variant.ID)
	}
	if variant.TargetAudience != models.AudienceIntermediate {
		t.Errorf("expected intermediate default, got %q", variant.TargetAudience)
	}
}

func TestListVariantPathsMergesDiskAndEmbedded(t *testing.T) {
	store := newTestStorage(t)

	embedded := store.ListVariantPaths("ecommerce")
	if len(embedded) != 2 {
		t.Fatalf("expected 2 embedded ecommerce variants, got %v", embedded)
	}

	dir := filepath.Join(store.RootPath(), "templates", "ecommerce")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "custom.md"), []byte("custom\n"), 0644); err != nil {
		t.Fatal(err)
	}

	merged := store.ListVariantPaths("ecommerce")
	if len(merged) != 3 {
		t.Fatalf("expected 3 variants after adding one on disk, got %v", merged)
	}

	for _, path := range merged {
		if path == "ecommerce/main-prompt.md" {
			t.Error("primary body must not be listed as a variant")
		}
	}
}

func TestLoadDescription(t *testing.T) {
	store := newTestStorage(t)

	desc := store.LoadDescription("saas/main-prompt.md")
	if desc == "" {
		t.Error("expected a frontmatter description for saas primary body")
	}
}
