// Package registry catalogs guidance templates per archetype. The catalog
// is fixed: exactly one descriptor per known archetype, however many variant
// bodies exist for it. Descriptors are built lazily and cached for process
// lifetime, including the declared-variable scan of the primary body.
package registry

import (
	"strings"

	"github.com/appforge/appforge/internal/models"
	"github.com/appforge/appforge/internal/renderer"
	"github.com/appforge/appforge/internal/storage"
)

// Registry resolves archetypes to template descriptors and variants.
// The caches are process-wide mutable state with no internal locking;
// callers needing concurrent writes serialize externally.
type Registry struct {
	store       *storage.Storage
	descriptors map[string]*models.TemplateDescriptor
	variants    map[string][]*models.TemplateVariant
}

// NewRegistry creates a registry over a template store.
func NewRegistry(store *storage.Storage) *Registry {
	return &Registry{
		store:       store,
		descriptors: make(map[string]*models.TemplateDescriptor),
		variants:    make(map[string][]*models.TemplateVariant),
	}
}

// MainBodyPath returns the conventional path of an archetype's primary body.
func MainBodyPath(archetype string) string {
	return archetype + "/main-prompt.md"
}

// Lookup resolves an archetype to its descriptor, case-insensitively.
// It returns nil when no template body exists at the conventional path.
func (r *Registry) Lookup(archetype string) *models.TemplateDescriptor {
	key := strings.ToLower(strings.TrimSpace(archetype))
	if key == "" {
		return nil
	}

	if desc, ok := r.descriptors[key]; ok {
		return desc
	}

	bodyPath := MainBodyPath(key)
	if !r.store.Exists(bodyPath) {
		return nil
	}

	desc := &models.TemplateDescriptor{
		ID:          key + "-main",
		Archetype:   key,
		BodyPath:    bodyPath,
		Description: r.store.LoadDescription(bodyPath),
	}
	if body, err := r.store.ReadBody(bodyPath); err == nil {
		desc.Variables = renderer.ScanVariables(body)
	}

	r.descriptors[key] = desc
	return desc
}

// ListAll returns one descriptor per known archetype, in catalog order,
// regardless of how many variants each archetype carries.
func (r *Registry) ListAll() []*models.TemplateDescriptor {
	descriptors := make([]*models.TemplateDescriptor, 0, len(models.Archetypes()))
	for _, archetype := range models.Archetypes() {
		if desc := r.Lookup(archetype); desc != nil {
			descriptors = append(descriptors, desc)
		}
	}
	return descriptors
}

// Variants returns the registered variants for an archetype in registration
// order. The returned slice is cached; weight adjustments through it persist
// for the process lifetime.
func (r *Registry) Variants(archetype string) []*models.TemplateVariant {
	key := strings.ToLower(strings.TrimSpace(archetype))
	if variants, ok := r.variants[key]; ok {
		return variants
	}

	var variants []*models.TemplateVariant
	for _, path := range r.store.ListVariantPaths(key) {
		variant, err := r.store.LoadVariant(path)
		if err != nil {
			continue
		}
		variants = append(variants, variant)
	}

	r.variants[key] = variants
	return variants
}

// Reset drops all cached descriptors and variants, giving tests a fresh
// catalog without rebuilding the registry.
func (r *Registry) Reset() {
	r.descriptors = make(map[string]*models.TemplateDescriptor)
	r.variants = make(map[string][]*models.TemplateVariant)
}
