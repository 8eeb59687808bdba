package models

import "sort"

// Required context keys every render receives
const (
	KeyProjectName      = "project_name"
	KeyProjectType      = "project_type"
	KeyComplexityLevel  = "complexity_level"
	KeyDetectedFeatures = "detected_features"
	KeyTechStack        = "tech_stack"
	KeyToolVersion      = "tool_version"
	KeyCurrentDate      = "current_date"
)

// Complexity levels recognized by the confidence scorer
const (
	ComplexitySimple   = "simple"
	ComplexityModerate = "moderate"
	ComplexityComplex  = "complex"
)

// PromptContext carries the values substituted into a template body during
// rendering. Required fields are typed; Flags holds optional boolean feature
// switches and Extra holds pass-through values the engine never interprets.
// Values are string, bool, or []string. The engine never mutates a context.
type PromptContext struct {
	ProjectName      string
	ProjectType      string
	ComplexityLevel  string
	DetectedFeatures []string
	TechStack        []string
	ToolVersion      string
	CurrentDate      string
	Flags            map[string]bool
	Extra            map[string]interface{}
}

// Vars flattens the context into the substitution map consumed by the
// renderer. Flags and Extra entries ride along untouched; an Extra entry
// never overrides a required key.
func (c *PromptContext) Vars() map[string]interface{} {
	vars := make(map[string]interface{}, 7+len(c.Flags)+len(c.Extra))
	for name, value := range c.Extra {
		vars[name] = value
	}
	for name, value := range c.Flags {
		vars[name] = value
	}
	vars[KeyProjectName] = c.ProjectName
	vars[KeyProjectType] = c.ProjectType
	vars[KeyComplexityLevel] = c.ComplexityLevel
	vars[KeyDetectedFeatures] = c.DetectedFeatures
	vars[KeyTechStack] = c.TechStack
	vars[KeyToolVersion] = c.ToolVersion
	vars[KeyCurrentDate] = c.CurrentDate
	return vars
}

// FlagNames returns the set flag names in stable order, for display.
func (c *PromptContext) FlagNames() []string {
	names := make([]string, 0, len(c.Flags))
	for name := range c.Flags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
