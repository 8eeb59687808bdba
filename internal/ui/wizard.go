// Package ui implements the interactive wizard: describe the project, pick
// an experience level and development phase, and read the generated prompt
// rendered as markdown.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/appforge/appforge/internal/clipboard"
	"github.com/appforge/appforge/internal/engine"
	"github.com/appforge/appforge/internal/models"
)

type wizardStep int

const (
	stepDescription wizardStep = iota
	stepName
	stepExperience
	stepPhase
	stepResult
	stepVariants
)

// SelectOption is one entry in a selection step.
type SelectOption struct {
	Label       string
	Description string
	Value       string
}

func experienceOptions() []SelectOption {
	return []SelectOption{
		{"Beginner", "Step-by-step guidance with explanations", models.AudienceBeginner},
		{"Intermediate", "Balanced guidance for most developers", models.AudienceIntermediate},
		{"Expert", "Dense, architecture-first guidance", models.AudienceExpert},
	}
}

func phaseOptions() []SelectOption {
	return []SelectOption{
		{"Planning", "Architecture and project structure first", models.PhasePlanning},
		{"Development", "Implementation guidance first", models.PhaseDevelopment},
		{"Optimization", "Best practices and troubleshooting first", models.PhaseOptimization},
	}
}

// Wizard is the bubbletea model driving the interactive flow.
type Wizard struct {
	engine *engine.Engine

	step        wizardStep
	description textinput.Model
	name        textinput.Model

	experienceOptions []SelectOption
	experienceIndex   int
	phaseOptions      []SelectOption
	phaseIndex        int

	result      models.RenderResult
	rendered    string
	feedbackMsg string
	copyMsg     string
	variantList list.Model

	width  int
	height int
}

// NewWizard creates the wizard model
func NewWizard(eng *engine.Engine) *Wizard {
	initializeColors()

	description := textinput.New()
	description.Placeholder = "an online store for vintage records with stripe checkout"
	description.CharLimit = 300
	description.Width = 70
	description.Focus()

	name := textinput.New()
	name.Placeholder = "my-project"
	name.CharLimit = 60
	name.Width = 40

	return &Wizard{
		engine:            eng,
		step:              stepDescription,
		description:       description,
		name:              name,
		experienceOptions: experienceOptions(),
		experienceIndex:   1, // intermediate
		phaseOptions:      phaseOptions(),
		phaseIndex:        1, // development
	}
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		return w, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return w, tea.Quit
		case "esc":
			if w.step == stepDescription {
				return w, tea.Quit
			}
			if w.step == stepVariants && w.variantList.FilterState() == list.Filtering {
				var cmd tea.Cmd
				w.variantList, cmd = w.variantList.Update(msg)
				return w, cmd
			}
			w.back()
			return w, nil
		}

		switch w.step {
		case stepDescription:
			return w.updateDescription(msg)
		case stepName:
			return w.updateName(msg)
		case stepExperience:
			w.experienceIndex = updateSelection(msg, w.experienceIndex, len(w.experienceOptions))
			if msg.String() == "enter" {
				w.step = stepPhase
			}
			return w, nil
		case stepPhase:
			w.phaseIndex = updateSelection(msg, w.phaseIndex, len(w.phaseOptions))
			if msg.String() == "enter" {
				w.generate()
			}
			return w, nil
		case stepResult:
			return w.updateResult(msg)
		case stepVariants:
			var cmd tea.Cmd
			w.variantList, cmd = w.variantList.Update(msg)
			return w, cmd
		}
	}

	return w, nil
}

func (w *Wizard) updateDescription(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		if strings.TrimSpace(w.description.Value()) == "" {
			return w, nil
		}
		w.description.Blur()
		w.name.Focus()
		w.step = stepName
		return w, textinput.Blink
	}

	var cmd tea.Cmd
	w.description, cmd = w.description.Update(msg)
	return w, cmd
}

func (w *Wizard) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		w.name.Blur()
		w.step = stepExperience
		return w, nil
	}

	var cmd tea.Cmd
	w.name, cmd = w.name.Update(msg)
	return w, cmd
}

func (w *Wizard) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return w, tea.Quit
	case "r":
		w.restart()
		return w, textinput.Blink
	case "h":
		w.recordFeedback(5, models.UsageHelpful)
		return w, nil
	case "n":
		w.recordFeedback(1, models.UsageNotHelpful)
		return w, nil
	case "v":
		w.openVariants()
		return w, nil
	case "c":
		if w.result.Success {
			if msg, err := clipboard.CopyWithFallback(w.result.Prompt); err != nil {
				w.copyMsg = StyleError.Render(err.Error())
			} else {
				w.copyMsg = StyleSuccess.Render(msg)
			}
		}
		return w, nil
	}
	return w, nil
}

// openVariants shows the registered variants for the generated archetype.
func (w *Wizard) openVariants() {
	variants := w.engine.Registry().Variants(w.result.Metadata.Archetype)
	items := make([]list.Item, 0, len(variants))
	for _, v := range variants {
		items = append(items, *v)
	}

	width := w.width
	if width <= 0 {
		width = 80
	}
	height := w.height - 4
	if height < 10 {
		height = 20
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Template variants for " + w.result.Metadata.Archetype
	w.variantList = l
	w.step = stepVariants
}

// updateSelection handles up/down navigation with wraparound.
func updateSelection(msg tea.KeyMsg, index, count int) int {
	switch msg.String() {
	case "up", "k":
		index--
		if index < 0 {
			index = count - 1
		}
	case "down", "j":
		index++
		if index >= count {
			index = 0
		}
	}
	return index
}

func (w *Wizard) back() {
	switch w.step {
	case stepName:
		w.name.Blur()
		w.description.Focus()
		w.step = stepDescription
	case stepExperience:
		w.name.Focus()
		w.step = stepName
	case stepPhase:
		w.step = stepExperience
	case stepResult:
		w.step = stepPhase
	case stepVariants:
		w.step = stepResult
	}
}

func (w *Wizard) restart() {
	w.description.SetValue("")
	w.name.SetValue("")
	w.description.Focus()
	w.experienceIndex = 1
	w.phaseIndex = 1
	w.result = models.RenderResult{}
	w.rendered = ""
	w.feedbackMsg = ""
	w.copyMsg = ""
	w.step = stepDescription
}

// generate runs the engine with the collected answers and renders the result.
func (w *Wizard) generate() {
	intent := w.engine.Analyze(w.description.Value())

	name := strings.TrimSpace(w.name.Value())
	if name == "" {
		name = "my-" + intent.Archetype + "-app"
	}

	ctx := w.engine.BuildContext(name, intent, []string{"next.js", "typescript"})
	sel := &models.SelectionContext{
		Intent:           intent,
		UserExperience:   w.experienceOptions[w.experienceIndex].Value,
		DevelopmentPhase: w.phaseOptions[w.phaseIndex].Value,
	}

	w.result = w.engine.Generate(intent.Archetype, ctx, sel)
	w.rendered = ""
	w.feedbackMsg = ""
	w.copyMsg = ""

	if w.result.Success {
		width := w.width - 4
		if width < 40 {
			width = 80
		}
		w.rendered = renderMarkdown(w.result.Prompt, width)
	}

	w.step = stepResult
}

// renderMarkdown renders prompt markdown for the terminal, falling back to
// the raw text if the renderer fails.
func renderMarkdown(src string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return src
	}
	rendered, err := renderer.Render(src)
	if err != nil {
		return src
	}
	return rendered
}

func (w *Wizard) recordFeedback(rating int, usage string) {
	if !w.result.Success || w.feedbackMsg != "" {
		return
	}
	w.engine.UpdateWeights([]models.TemplateFeedback{
		{VariantID: w.result.Metadata.TemplateID, Rating: rating, Usage: usage},
	})
	w.feedbackMsg = "Feedback recorded, thanks"
}

// View implements tea.Model
func (w *Wizard) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("appforge"))
	b.WriteString("\n\n")

	switch w.step {
	case stepDescription:
		b.WriteString(StyleFormLabel.Render("What are you building?"))
		b.WriteString("\n\n")
		b.WriteString(w.description.View())
		b.WriteString("\n\n")
		b.WriteString(CreateHelp("enter continue • esc quit"))

	case stepName:
		b.WriteString(StyleFormLabel.Render("Project name (optional)"))
		b.WriteString("\n\n")
		b.WriteString(w.name.View())
		b.WriteString("\n\n")
		b.WriteString(CreateHelp("enter continue • esc back"))

	case stepExperience:
		b.WriteString(StyleFormLabel.Render("Your experience level"))
		b.WriteString("\n\n")
		w.writeOptions(&b, w.experienceOptions, w.experienceIndex)
		b.WriteString(CreateHelp("↑/↓ select • enter continue • esc back"))

	case stepPhase:
		b.WriteString(StyleFormLabel.Render("Current development phase"))
		b.WriteString("\n\n")
		w.writeOptions(&b, w.phaseOptions, w.phaseIndex)
		b.WriteString(CreateHelp("↑/↓ select • enter generate • esc back"))

	case stepResult:
		w.writeResult(&b)

	case stepVariants:
		b.WriteString(w.variantList.View())
		b.WriteString("\n")
		b.WriteString(CreateHelp("/ filter • esc back"))
	}

	return b.String()
}

func (w *Wizard) writeOptions(b *strings.Builder, options []SelectOption, selected int) {
	for i, option := range options {
		for _, line := range CreateOption(option.Label, option.Description, i == selected) {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
}

func (w *Wizard) writeResult(b *strings.Builder) {
	if !w.result.Success {
		b.WriteString(StyleError.Render("Generation failed"))
		b.WriteString("\n\n")
		b.WriteString(StyleText.Render(w.result.Error))
		b.WriteString("\n\n")
		b.WriteString(CreateHelp("r start over • q quit"))
		return
	}

	meta := w.result.Metadata
	b.WriteString(StyleMetadata.Render(fmt.Sprintf(
		"archetype: %s | template: %s | confidence: %d/100",
		meta.Archetype, meta.TemplateID, meta.ConfidenceScore)))
	b.WriteString("\n")
	b.WriteString(w.rendered)
	b.WriteString("\n")

	if w.feedbackMsg != "" {
		b.WriteString(StyleSuccess.Render(w.feedbackMsg))
		b.WriteString("\n")
	}
	if w.copyMsg != "" {
		b.WriteString(w.copyMsg)
		b.WriteString("\n")
	}
	b.WriteString(CreateHelp("c copy • h helpful • n not helpful • v variants • r start over • q quit"))
}
