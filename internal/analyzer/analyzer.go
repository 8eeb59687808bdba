// Package analyzer reads a free-text application description and infers the
// project intent: likely archetype, feature set, and complexity. Matching is
// keyword-table driven with fuzzy fallback so near-miss tokens still
// resolve. The analysis is deterministic for a given description and
// configuration.
package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/appforge/appforge/internal/config"
	"github.com/appforge/appforge/internal/models"
	"github.com/sahilm/fuzzy"
)

// Matching weights: an exact keyword hit counts much more than a fuzzy one.
const (
	exactMatchScore = 3
	fuzzyMatchScore = 1
	fuzzyMinTokenLen = 5
)

// Analyzer infers project intent from descriptions
type Analyzer struct {
	cfg *config.EngineConfig
}

// NewAnalyzer creates an analyzer over the engine configuration.
func NewAnalyzer(cfg *config.EngineConfig) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze infers the archetype, features, and complexity a description
// implies. When nothing matches, the intent falls back to the generic base
// guidance with low confidence.
func (a *Analyzer) Analyze(description string) models.ProjectIntent {
	tokens := tokenize(description)

	archetype, archScore, matched := a.bestArchetype(tokens)
	features := a.detectFeatures(tokens)

	intent := models.ProjectIntent{
		Archetype:  archetype,
		Features:   features,
		Complexity: complexityFor(len(features)),
		Confidence: confidenceFor(archScore, len(features)),
	}
	intent.Reasoning = reasoning(archetype, matched, features)
	return intent
}

// bestArchetype scores every catalog archetype against the tokens and
// returns the best, with ties broken by catalog order. A description with
// no archetype signal resolves to "base".
func (a *Analyzer) bestArchetype(tokens []string) (archetype string, score int, matched []string) {
	bestScore := 0
	best := "base"
	var bestMatched []string

	for _, candidate := range models.Archetypes() {
		keywords := a.cfg.ArchetypeKeywords[candidate]
		candidateScore, candidateMatched := scoreKeywords(tokens, keywords)
		if candidateScore > bestScore {
			bestScore = candidateScore
			best = candidate
			bestMatched = candidateMatched
		}
	}

	return best, bestScore, bestMatched
}

// detectFeatures returns the feature flags the description implies, in
// stable alphabetical order.
func (a *Analyzer) detectFeatures(tokens []string) []string {
	var features []string
	for feature, keywords := range a.cfg.FeatureKeywords {
		if score, _ := scoreKeywords(tokens, keywords); score > 0 {
			features = append(features, feature)
		}
	}
	sort.Strings(features)
	return features
}

// scoreKeywords accumulates exact and fuzzy hits of tokens against a
// keyword list.
func scoreKeywords(tokens, keywords []string) (score int, matched []string) {
	seen := make(map[string]bool)

	for _, token := range tokens {
		hit := ""
		points := 0

		for _, keyword := range keywords {
			if token == keyword {
				hit, points = keyword, exactMatchScore
				break
			}
		}
		if hit == "" && len(token) >= fuzzyMinTokenLen {
			if results := fuzzy.Find(token, keywords); len(results) > 0 {
				hit, points = results[0].Str, fuzzyMatchScore
			}
		}

		if hit != "" {
			score += points
			if !seen[hit] {
				seen[hit] = true
				matched = append(matched, hit)
			}
		}
	}

	return score, matched
}

func complexityFor(featureCount int) string {
	switch {
	case featureCount >= 4:
		return models.ComplexityComplex
	case featureCount >= 2:
		return models.ComplexityModerate
	default:
		return models.ComplexitySimple
	}
}

// confidenceFor is a coarse 0-100 reading of how much signal the
// description carried.
func confidenceFor(archScore, featureCount int) int {
	if archScore > 4 {
		archScore = 4
	}
	confidence := 30 + archScore*10 + featureCount*5
	if confidence > 95 {
		confidence = 95
	}
	return confidence
}

func reasoning(archetype string, matched, features []string) string {
	if len(matched) == 0 {
		return "no archetype keywords matched; falling back to generic guidance"
	}
	r := fmt.Sprintf("matched %s keywords: %s", archetype, strings.Join(matched, ", "))
	if len(features) > 0 {
		r += fmt.Sprintf("; detected features: %s", strings.Join(features, ", "))
	}
	return r
}

// tokenize lowercases and splits a description on non-alphanumeric runes,
// keeping dots and hyphens so stack names like "next.js" survive.
func tokenize(description string) []string {
	return strings.FieldsFunc(strings.ToLower(description), func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
			return false
		default:
			return true
		}
	})
}
