// Package scorer computes the 0-100 confidence score attached to every
// generated prompt. The score is a UX heuristic for how much signal the
// context carried, not a statistical guarantee: more complexity, more
// detected features, and a more specific tech stack all raise it.
package scorer

import (
	"strings"

	"github.com/appforge/appforge/internal/config"
	"github.com/appforge/appforge/internal/models"
)

// Scorer derives confidence scores from prompt contexts
type Scorer struct {
	cfg *config.EngineConfig
}

// NewScorer creates a scorer over the engine configuration.
func NewScorer(cfg *config.EngineConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score computes the confidence score for a context. It is monotonically
// non-decreasing in feature count and tech-stack specificity, and always
// lands in [0, 100].
func (s *Scorer) Score(ctx *models.PromptContext) int {
	score := s.baseScore(ctx.ComplexityLevel)

	features := len(ctx.DetectedFeatures)
	if features > s.cfg.FeatureCountCap {
		features = s.cfg.FeatureCountCap
	}
	score += features * s.cfg.FeatureIncrement

	if s.recognizedTechnologies(ctx.TechStack) > 1 {
		score += s.cfg.TechStackBonus
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// baseScore maps complexity to a starting value; a more complex project
// implies more collected signal. Unknown levels score as moderate.
func (s *Scorer) baseScore(complexity string) int {
	if base, ok := s.cfg.ComplexityBaseScores[strings.ToLower(strings.TrimSpace(complexity))]; ok {
		return base
	}
	return s.cfg.ComplexityBaseScores[models.ComplexityModerate]
}

// recognizedTechnologies counts stack entries present in the known set.
func (s *Scorer) recognizedTechnologies(stack []string) int {
	known := make(map[string]bool, len(s.cfg.KnownTechnologies))
	for _, tech := range s.cfg.KnownTechnologies {
		known[tech] = true
	}

	count := 0
	for _, tech := range stack {
		if known[strings.ToLower(strings.TrimSpace(tech))] {
			count++
		}
	}
	return count
}
