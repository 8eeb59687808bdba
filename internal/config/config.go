// Package config holds the tunable tables the prompt engine consults:
// scoring coefficients, focus priorities per development phase, and the
// keyword tables the analyzer matches descriptions against. Values ship as
// in-code defaults; a JSON file in the library overrides whichever top-level
// keys it names.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/appforge/appforge/internal/models"
)

// EngineConfig carries every tunable the engine reads.
type EngineConfig struct {
	// Confidence scoring
	ComplexityBaseScores map[string]int `json:"complexity_base_scores"`
	FeatureIncrement     int            `json:"feature_increment"`
	FeatureCountCap      int            `json:"feature_count_cap"`
	TechStackBonus       int            `json:"tech_stack_bonus"`
	KnownTechnologies    []string       `json:"known_technologies"`

	// Variant selection
	FocusPriorities map[string][]string `json:"focus_priorities"`

	// Intent analysis
	ArchetypeKeywords map[string][]string `json:"archetype_keywords"`
	FeatureKeywords   map[string][]string `json:"feature_keywords"`
}

// Default returns the built-in configuration.
func Default() *EngineConfig {
	return &EngineConfig{
		ComplexityBaseScores: map[string]int{
			models.ComplexitySimple:   35,
			models.ComplexityModerate: 50,
			models.ComplexityComplex:  65,
		},
		FeatureIncrement: 8,
		FeatureCountCap:  4,
		TechStackBonus:   10,
		KnownTechnologies: []string{
			"next.js", "react", "vue", "svelte", "node", "express",
			"postgres", "mysql", "sqlite", "mongodb", "redis",
			"tailwind", "typescript", "graphql", "prisma", "stripe",
		},
		FocusPriorities: map[string][]string{
			models.PhasePlanning: {
				models.FocusArchitecture,
				models.FocusImplementation,
				models.FocusBestPractices,
				models.FocusTroubleshooting,
			},
			models.PhaseDevelopment: {
				models.FocusImplementation,
				models.FocusBestPractices,
				models.FocusTroubleshooting,
				models.FocusArchitecture,
			},
			models.PhaseOptimization: {
				models.FocusBestPractices,
				models.FocusTroubleshooting,
				models.FocusArchitecture,
				models.FocusImplementation,
			},
		},
		ArchetypeKeywords: map[string][]string{
			models.ArchetypeEcommerce: {
				"shop", "store", "ecommerce", "commerce", "marketplace",
				"cart", "checkout", "product", "catalog", "sell",
			},
			models.ArchetypeSaas: {
				"saas", "subscription", "tenant", "platform", "b2b",
				"workspace", "team", "billing", "trial",
			},
			models.ArchetypeBlog: {
				"blog", "article", "post", "publication", "newsletter",
				"writing", "magazine", "content",
			},
			models.ArchetypePortfolio: {
				"portfolio", "showcase", "resume", "personal", "freelance",
				"gallery", "work",
			},
			models.ArchetypeDashboard: {
				"dashboard", "admin", "analytics", "metrics", "monitoring",
				"internal", "report", "chart", "visualization",
			},
		},
		FeatureKeywords: map[string][]string{
			"auth": {
				"auth", "login", "signup", "account", "user", "oauth", "sso",
			},
			"payment": {
				"payment", "stripe", "checkout", "billing", "subscription", "pay",
			},
			"realtime": {
				"realtime", "live", "websocket", "collaborative", "chat",
			},
			"search": {
				"search", "filter", "find", "query",
			},
			"analytics": {
				"analytics", "tracking", "metrics", "insights",
			},
			"cms": {
				"cms", "editor", "publish", "contentful", "sanity",
			},
			"api": {
				"api", "rest", "graphql", "endpoint", "integration",
			},
		},
	}
}

// configPath returns the override file location inside a library root.
func configPath(rootPath string) string {
	return filepath.Join(rootPath, ".appforge", "engine.json")
}

// Load returns the default configuration with any user override file merged
// over it. A missing override file is not an error; a malformed one is.
func Load(rootPath string) (*EngineConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(configPath(rootPath))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read engine config: %w", err)
	}

	// Unmarshal over the defaults: keys present in the file replace the
	// default value, absent keys keep it.
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse engine config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration as the library's override file.
func (c *EngineConfig) Save(rootPath string) error {
	path := configPath(rootPath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal engine config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// FocusPriority returns the focus ordering for a development phase, falling
// back to the development ordering for unknown phases.
func (c *EngineConfig) FocusPriority(phase string) []string {
	if priority, ok := c.FocusPriorities[phase]; ok {
		return priority
	}
	return c.FocusPriorities[models.PhaseDevelopment]
}
