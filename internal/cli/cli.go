// Package cli provides the headless command-line interface: everything the
// TUI wizard can do, scriptable. Output defaults to plain text; --format
// json emits machine-readable results and --format pretty renders markdown
// to the terminal.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/appforge/appforge/internal/clipboard"
	"github.com/appforge/appforge/internal/engine"
	"github.com/appforge/appforge/internal/errors"
	"github.com/appforge/appforge/internal/models"
	"github.com/charmbracelet/glamour"
)

// CLI executes commands against the prompt engine
type CLI struct {
	engine       *engine.Engine
	errorHandler *errors.CLIErrorHandler
}

// NewCLI creates a new CLI instance
func NewCLI(eng *engine.Engine) *CLI {
	return &CLI{
		engine:       eng,
		errorHandler: errors.NewCLIErrorHandler(os.Getenv("APPFORGE_VERBOSE") != ""),
	}
}

// ExecuteCommand processes a CLI command and returns the result
func (c *CLI) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "generate", "gen":
		return c.generate(commandArgs)
	case "preview":
		return c.preview(commandArgs)
	case "archetypes", "list":
		return c.listArchetypes(commandArgs)
	case "variants":
		return c.listVariants(commandArgs)
	case "analyze":
		return c.analyze(commandArgs)
	case "feedback":
		return c.feedback(commandArgs)
	case "init":
		return c.initLibrary()
	case "help":
		return c.printUsage()
	default:
		return c.errorHandler.HandleError(errors.CommandNotFoundError(command))
	}
}

// flagValue extracts "--flag value" style options, returning the remaining
// positional arguments.
func flagValue(args []string, names ...string) (value string, rest []string) {
	match := func(arg string) bool {
		for _, name := range names {
			if arg == name {
				return true
			}
		}
		return false
	}

	for i := 0; i < len(args); i++ {
		if match(args[i]) && i+1 < len(args) {
			value = args[i+1]
			i++
			continue
		}
		rest = append(rest, args[i])
	}
	return value, rest
}

// boolFlag extracts a bare "--flag" style switch, returning the remaining
// arguments.
func boolFlag(args []string, names ...string) (found bool, rest []string) {
	for _, arg := range args {
		matched := false
		for _, name := range names {
			if arg == name {
				matched = true
				break
			}
		}
		if matched {
			found = true
			continue
		}
		rest = append(rest, arg)
	}
	return found, rest
}

// generate renders a guidance prompt from a project description
func (c *CLI) generate(args []string) error {
	copyToClipboard, args := boolFlag(args, "--copy", "-c")
	format, args := flagValue(args, "--format", "-f")
	name, args := flagValue(args, "--name", "-n")
	archetype, args := flagValue(args, "--type", "-t")
	experience, args := flagValue(args, "--experience", "-e")
	phase, args := flagValue(args, "--phase", "-p")
	stack, args := flagValue(args, "--stack", "-s")

	description := strings.Join(args, " ")
	if description == "" && archetype == "" {
		return c.errorHandler.HandleError(
			errors.ValidationError("generate requires a project description or --type"))
	}

	intent := c.engine.Analyze(description)
	if archetype != "" {
		intent.Archetype = strings.ToLower(archetype)
	}
	if name == "" {
		name = "my-" + intent.Archetype + "-app"
	}
	if experience == "" {
		experience = models.AudienceIntermediate
	}
	if phase == "" {
		phase = models.PhaseDevelopment
	}

	var techStack []string
	if stack != "" {
		for _, tech := range strings.Split(stack, ",") {
			techStack = append(techStack, strings.TrimSpace(tech))
		}
	} else {
		techStack = []string{"next.js", "typescript"}
	}

	ctx := c.engine.BuildContext(name, intent, techStack)
	sel := &models.SelectionContext{
		Intent:           intent,
		UserExperience:   experience,
		DevelopmentPhase: phase,
	}

	result := c.engine.Generate(intent.Archetype, ctx, sel)

	if copyToClipboard && result.Success {
		if msg, err := clipboard.CopyWithFallback(result.Prompt); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else {
			fmt.Println(msg)
		}
	}

	switch format {
	case "json":
		return printJSON(result)
	case "pretty":
		if !result.Success {
			return fmt.Errorf("%s", result.Error)
		}
		rendered, err := glamour.Render(result.Prompt, "auto")
		if err != nil {
			// Fall back to the raw prompt if the terminal renderer chokes
			rendered = result.Prompt
		}
		fmt.Print(rendered)
		c.printMetadata(result.Metadata)
		return nil
	default:
		if !result.Success {
			return fmt.Errorf("%s", result.Error)
		}
		fmt.Println(result.Prompt)
		c.printMetadata(result.Metadata)
		return nil
	}
}

func (c *CLI) printMetadata(meta models.RenderMetadata) {
	fmt.Printf("\n---\narchetype: %s | template: %s | confidence: %d/100\n",
		meta.Archetype, meta.TemplateID, meta.ConfidenceScore)
}

// preview shows the beginning of an archetype's primary template body
func (c *CLI) preview(args []string) error {
	format, args := flagValue(args, "--format", "-f")
	if len(args) == 0 {
		return c.errorHandler.HandleError(errors.ValidationError("preview requires an archetype"))
	}

	text, ok := c.engine.Preview(args[0])
	if !ok {
		return c.errorHandler.HandleError(errors.NotFoundError("template for " + args[0]))
	}

	if format == "pretty" {
		rendered, err := glamour.Render(text, "auto")
		if err == nil {
			fmt.Print(rendered)
			return nil
		}
	}
	fmt.Println(text)
	return nil
}

// listArchetypes lists the template catalog
func (c *CLI) listArchetypes(args []string) error {
	format, _ := flagValue(args, "--format", "-f")

	descriptors := c.engine.Registry().ListAll()
	if format == "json" {
		return printJSON(descriptors)
	}

	for _, desc := range descriptors {
		fmt.Printf("%-12s %s\n", desc.Archetype, desc.Description)
	}
	return nil
}

// listVariants lists the registered variants for an archetype
func (c *CLI) listVariants(args []string) error {
	format, args := flagValue(args, "--format", "-f")
	if len(args) == 0 {
		return c.errorHandler.HandleError(errors.ValidationError("variants requires an archetype"))
	}

	variants := c.engine.Registry().Variants(strings.ToLower(args[0]))
	if format == "json" {
		return printJSON(variants)
	}

	if len(variants) == 0 {
		fmt.Println("no variants registered; the primary template will be used")
		return nil
	}
	for _, v := range variants {
		fmt.Printf("%-36s audience=%-12s focus=%-16s weight=%.1f\n",
			v.ID, v.TargetAudience, v.Focus, v.Weight)
	}
	return nil
}

// analyze shows the inferred project intent for a description
func (c *CLI) analyze(args []string) error {
	format, args := flagValue(args, "--format", "-f")
	description := strings.Join(args, " ")
	if description == "" {
		return c.errorHandler.HandleError(errors.ValidationError("analyze requires a description"))
	}

	intent := c.engine.Analyze(description)
	if format == "json" {
		return printJSON(intent)
	}

	fmt.Printf("archetype:  %s\n", intent.Archetype)
	fmt.Printf("features:   %s\n", strings.Join(intent.Features, ", "))
	fmt.Printf("complexity: %s\n", intent.Complexity)
	fmt.Printf("confidence: %d/100\n", intent.Confidence)
	fmt.Printf("reasoning:  %s\n", intent.Reasoning)
	return nil
}

// feedback records how useful a variant was: feedback <variant-id> <rating> <usage>
func (c *CLI) feedback(args []string) error {
	if len(args) < 3 {
		return c.errorHandler.HandleError(
			errors.ValidationError("feedback requires <variant-id> <rating 1-5> <helpful|partially_helpful|not_helpful>"))
	}

	rating, err := strconv.Atoi(args[1])
	if err != nil || rating < 1 || rating > 5 {
		return c.errorHandler.HandleError(errors.ValidationError("rating must be an integer 1-5"))
	}

	usage := args[2]
	switch usage {
	case models.UsageHelpful, models.UsagePartiallyHelpful, models.UsageNotHelpful:
	default:
		return c.errorHandler.HandleError(errors.ValidationError("unknown usage outcome: " + usage))
	}

	c.engine.UpdateWeights([]models.TemplateFeedback{
		{VariantID: args[0], Rating: rating, Usage: usage},
	})
	fmt.Println("Feedback recorded")
	return nil
}

// initLibrary writes the default template library
func (c *CLI) initLibrary() error {
	if err := c.engine.InitLibrary(); err != nil {
		return c.errorHandler.HandleError(errors.StorageError("init library", err))
	}
	fmt.Println("Initialized appforge template library")
	return nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func (c *CLI) printUsage() error {
	fmt.Print(`appforge CLI commands:

    generate <description>   Generate a guidance prompt for a project
        --name, -n           Project name
        --type, -t           Force an archetype instead of inferring it
        --experience, -e     beginner | intermediate | expert
        --phase, -p          planning | development | optimization
        --stack, -s          Comma-separated tech stack
        --format, -f         text | json | pretty
        --copy               Copy the generated prompt to the clipboard
    preview <archetype>      Show the start of the primary template body
    archetypes               List the template catalog
    variants <archetype>     List registered template variants
    analyze <description>    Show the inferred project intent
    feedback <id> <1-5> <usage>  Record variant feedback
    init                     Write the default template library
    help                     Show this help
`)
	return nil
}
