// Package selector resolves one template variant per request. Selection is
// a single decision, not a protocol: filter by audience, walk the phase's
// focus priority, fall back deterministically. Feedback adjusts variant
// weights, which persist for the process lifetime; weight deliberately does
// not reorder selection today.
package selector

import (
	"github.com/appforge/appforge/internal/config"
	"github.com/appforge/appforge/internal/models"
	"github.com/appforge/appforge/internal/registry"
)

// Selector picks the best variant for an archetype and caller context.
type Selector struct {
	registry *registry.Registry
	cfg      *config.EngineConfig
}

// NewSelector creates a selector over a registry and engine configuration.
func NewSelector(reg *registry.Registry, cfg *config.EngineConfig) *Selector {
	return &Selector{registry: reg, cfg: cfg}
}

// SelectOptimalTemplate resolves one variant for the archetype:
//
//   - no registered variants: a synthesized default pointing at the
//     archetype's primary body
//   - exactly one: returned unconditionally
//   - otherwise: audience filter, focus priority walk, then first of the
//     filtered set by insertion order, never random
func (s *Selector) SelectOptimalTemplate(archetype string, sel *models.SelectionContext) *models.TemplateVariant {
	candidates := s.registry.Variants(archetype)

	if len(candidates) == 0 {
		return defaultVariant(archetype)
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	filtered := filterByAudience(candidates, sel.UserExperience)

	for _, focus := range s.cfg.FocusPriority(sel.DevelopmentPhase) {
		for _, candidate := range filtered {
			if candidate.Focus == focus {
				return candidate
			}
		}
	}

	return filtered[0]
}

// UpdateWeights applies feedback to every variant with a matching id across
// all archetypes. Helpful feedback rated 4+ raises the weight by 0.1 up to
// the cap; not-helpful or low-rated feedback lowers it by 0.1 down to the
// floor. Other combinations leave the weight alone.
func (s *Selector) UpdateWeights(feedback []models.TemplateFeedback) {
	for _, item := range feedback {
		for _, archetype := range models.Archetypes() {
			for _, variant := range s.registry.Variants(archetype) {
				if variant.ID != item.VariantID {
					continue
				}
				variant.Weight = adjustWeight(variant.Weight, item)
			}
		}
	}
}

func adjustWeight(weight float64, item models.TemplateFeedback) float64 {
	switch {
	case item.Usage == models.UsageHelpful && item.Rating >= 4:
		weight += 0.1
	case item.Usage == models.UsageNotHelpful || item.Rating <= 2:
		weight -= 0.1
	}

	if weight > models.WeightMax {
		return models.WeightMax
	}
	if weight < models.WeightMin {
		return models.WeightMin
	}
	return weight
}

// filterByAudience narrows candidates to the caller's experience level.
// Beginner and expert callers fall back to intermediate material before
// falling back to everything; intermediate callers fall straight through.
func filterByAudience(candidates []*models.TemplateVariant, experience string) []*models.TemplateVariant {
	matched := byAudience(candidates, experience)
	if len(matched) > 0 {
		return matched
	}

	if experience == models.AudienceBeginner || experience == models.AudienceExpert {
		if matched := byAudience(candidates, models.AudienceIntermediate); len(matched) > 0 {
			return matched
		}
	}

	return candidates
}

func byAudience(candidates []*models.TemplateVariant, audience string) []*models.TemplateVariant {
	var matched []*models.TemplateVariant
	for _, candidate := range candidates {
		if candidate.TargetAudience == audience {
			matched = append(matched, candidate)
		}
	}
	return matched
}

// defaultVariant synthesizes the stand-in used when an archetype has no
// registered variants.
func defaultVariant(archetype string) *models.TemplateVariant {
	return &models.TemplateVariant{
		ID:             archetype + "-default",
		Name:           archetype + " guidance",
		TargetAudience: models.AudienceIntermediate,
		Focus:          models.FocusImplementation,
		BodyPath:       registry.MainBodyPath(archetype),
		Weight:         models.WeightDefault,
	}
}
