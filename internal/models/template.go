package models

import "strings"

// Known project archetypes. The registry serves exactly this catalog.
const (
	ArchetypeEcommerce = "ecommerce"
	ArchetypeSaas      = "saas"
	ArchetypeBlog      = "blog"
	ArchetypePortfolio = "portfolio"
	ArchetypeDashboard = "dashboard"
)

// Archetypes lists the fixed catalog in registration order.
func Archetypes() []string {
	return []string{
		ArchetypeEcommerce,
		ArchetypeSaas,
		ArchetypeBlog,
		ArchetypePortfolio,
		ArchetypeDashboard,
	}
}

// TemplateDescriptor describes the primary guidance template for an archetype
type TemplateDescriptor struct {
	ID          string   `yaml:"id" json:"id"`
	Archetype   string   `yaml:"archetype" json:"archetype"`
	BodyPath    string   `yaml:"-" json:"body_path"`
	Variables   []string `yaml:"-" json:"variables"`
	Description string   `yaml:"description" json:"description"`
}

// Audience levels a variant can target
const (
	AudienceBeginner     = "beginner"
	AudienceIntermediate = "intermediate"
	AudienceExpert       = "expert"
)

// Focus areas a variant can emphasize
const (
	FocusImplementation  = "implementation"
	FocusArchitecture    = "architecture"
	FocusBestPractices   = "best-practices"
	FocusTroubleshooting = "troubleshooting"
)

// Variant weight bounds enforced by feedback updates
const (
	WeightMin     = 0.1
	WeightMax     = 2.0
	WeightDefault = 1.0
)

// TemplateVariant is one of several alternative guidance bodies for an
// archetype, differing by target audience and focus. Weight is adjusted by
// user feedback and clamped to [WeightMin, WeightMax].
type TemplateVariant struct {
	ID             string  `yaml:"id" json:"id"`
	Name           string  `yaml:"name" json:"name"`
	Summary        string  `yaml:"description" json:"description"`
	TargetAudience string  `yaml:"target_audience" json:"target_audience"`
	Focus          string  `yaml:"focus" json:"focus"`
	BodyPath       string  `yaml:"-" json:"body_path"`
	Weight         float64 `yaml:"weight" json:"weight"`
}

// Implement list.Item interface for the bubbles list component

// FilterValue returns the value used for filtering in lists
func (v TemplateVariant) FilterValue() string {
	return v.Name
}

// Title satisfies the list.Item interface
func (v TemplateVariant) Title() string {
	if v.Name != "" {
		return v.Name
	}
	return v.ID
}

// Description satisfies the list.Item interface
func (v TemplateVariant) Description() string {
	parts := []string{}
	if v.Summary != "" {
		parts = append(parts, v.Summary)
	}
	if v.TargetAudience != "" {
		parts = append(parts, "Audience: "+v.TargetAudience)
	}
	if v.Focus != "" {
		parts = append(parts, "Focus: "+v.Focus)
	}
	return strings.Join(parts, " • ")
}
