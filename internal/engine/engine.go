// Package engine is the prompt generation facade. It owns the registry,
// selector, renderer, scorer, and analyzer, and exposes the one operation
// the surfaces care about: turn a context into a rendered guidance prompt
// with metadata. Every failure is converted to an unsuccessful RenderResult
// at this boundary; nothing escapes as a fault, and no partial prompt ever
// accompanies an error.
package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/appforge/appforge/internal/analyzer"
	"github.com/appforge/appforge/internal/config"
	"github.com/appforge/appforge/internal/models"
	"github.com/appforge/appforge/internal/registry"
	"github.com/appforge/appforge/internal/renderer"
	"github.com/appforge/appforge/internal/scorer"
	"github.com/appforge/appforge/internal/selector"
	"github.com/appforge/appforge/internal/storage"
)

// previewLimit caps Preview output before the ellipsis is appended.
const previewLimit = 200

// Engine provides prompt generation for the CLI, API, and TUI surfaces.
// Each Generate call is an independent computation over immutable inputs;
// the only state shared across calls is the registry's descriptor cache and
// the variant weight table.
type Engine struct {
	version  string
	store    *storage.Storage
	cfg      *config.EngineConfig
	registry *registry.Registry
	selector *selector.Selector
	scorer   *scorer.Scorer
	renderer *renderer.Renderer
	analyzer *analyzer.Analyzer
}

// NewEngine creates an engine over the template library at rootPath,
// falling back to $APPFORGE_DIR and ~/.appforge.
func NewEngine(rootPath, version string) (*Engine, error) {
	store, err := storage.NewStorage(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	cfg, err := config.Load(store.RootPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load engine config: %w", err)
	}

	reg := registry.NewRegistry(store)

	return &Engine{
		version:  version,
		store:    store,
		cfg:      cfg,
		registry: reg,
		selector: selector.NewSelector(reg, cfg),
		scorer:   scorer.NewScorer(cfg),
		renderer: renderer.NewRenderer(),
		analyzer: analyzer.NewAnalyzer(cfg),
	}, nil
}

// InitLibrary creates the library directory structure and writes the
// default templates.
func (e *Engine) InitLibrary() error {
	return e.store.InitLibrary()
}

// Registry exposes the template catalog.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Version returns the tool version stamped into generated contexts.
func (e *Engine) Version() string {
	return e.version
}

// Generate renders the best-matching guidance prompt for an archetype and
// context. An unknown archetype fails immediately without touching the
// renderer.
func (e *Engine) Generate(archetypeHint string, ctx *models.PromptContext, sel *models.SelectionContext) models.RenderResult {
	desc := e.registry.Lookup(archetypeHint)
	if desc == nil {
		return models.Failure(fmt.Sprintf("no template found for project type: %s", archetypeHint))
	}

	variant := e.selector.SelectOptimalTemplate(desc.Archetype, sel)

	body, err := e.store.ReadBody(variant.BodyPath)
	if err != nil {
		return models.Failure(err.Error())
	}

	prompt, err := e.renderer.Render(body, ctx.Vars())
	if err != nil {
		return models.Failure(err.Error())
	}

	return models.RenderResult{
		Success: true,
		Prompt:  prompt,
		Metadata: models.RenderMetadata{
			Archetype:        desc.Archetype,
			DetectedFeatures: ctx.DetectedFeatures,
			ConfidenceScore:  e.scorer.Score(ctx),
			TemplateID:       variant.ID,
			GeneratedAt:      time.Now().UTC(),
		},
	}
}

// Preview returns the raw unrendered primary body for an archetype,
// truncated to 200 characters with a literal ellipsis appended when
// truncated. The second return is false when no body is readable.
func (e *Engine) Preview(archetype string) (string, bool) {
	desc := e.registry.Lookup(archetype)
	if desc == nil {
		return "", false
	}

	body, err := e.store.ReadBody(desc.BodyPath)
	if err != nil {
		return "", false
	}

	if len(body) > previewLimit {
		return body[:previewLimit] + "...", true
	}
	return body, true
}

// Analyze infers project intent from a free-text description.
func (e *Engine) Analyze(description string) models.ProjectIntent {
	return e.analyzer.Analyze(description)
}

// UpdateWeights applies template feedback to the variant weight table.
func (e *Engine) UpdateWeights(feedback []models.TemplateFeedback) {
	e.selector.UpdateWeights(feedback)
}

// SelectVariant resolves the variant Generate would use, for inspection.
func (e *Engine) SelectVariant(archetype string, sel *models.SelectionContext) *models.TemplateVariant {
	return e.selector.SelectOptimalTemplate(strings.ToLower(archetype), sel)
}

// BuildContext assembles the prompt context Generate consumes from an
// analyzed intent. Detected features become has_<feature>_feature flags so
// template conditionals can key on them.
func (e *Engine) BuildContext(projectName string, intent models.ProjectIntent, techStack []string) *models.PromptContext {
	flags := make(map[string]bool, len(intent.Features))
	for _, feature := range intent.Features {
		flags["has_"+feature+"_feature"] = true
	}

	return &models.PromptContext{
		ProjectName:      projectName,
		ProjectType:      intent.Archetype,
		ComplexityLevel:  intent.Complexity,
		DetectedFeatures: intent.Features,
		TechStack:        techStack,
		ToolVersion:      e.version,
		CurrentDate:      time.Now().Format("2006-01-02"),
		Flags:            flags,
	}
}
