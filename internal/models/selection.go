package models

// Development phases steering variant focus priority
const (
	PhasePlanning     = "planning"
	PhaseDevelopment  = "development"
	PhaseOptimization = "optimization"
)

// Feedback usage outcomes
const (
	UsageHelpful          = "helpful"
	UsagePartiallyHelpful = "partially_helpful"
	UsageNotHelpful       = "not_helpful"
)

// ProjectIntent is the analyzer's reading of what the user wants to build.
type ProjectIntent struct {
	Archetype  string   `json:"archetype"`
	Features   []string `json:"features"`
	Complexity string   `json:"complexity"`
	Confidence int      `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
}

// SelectionContext describes the caller well enough to pick one variant.
type SelectionContext struct {
	Intent           ProjectIntent      `json:"intent"`
	UserExperience   string             `json:"user_experience"`
	DevelopmentPhase string             `json:"development_phase"`
	Feedback         []TemplateFeedback `json:"feedback,omitempty"`
}

// TemplateFeedback records how useful a variant turned out to be.
// It mutates variant weight only; persistence is up to the caller.
type TemplateFeedback struct {
	VariantID string `json:"variant_id"`
	Rating    int    `json:"rating"` // 1-5
	Usage     string `json:"usage"`
}
