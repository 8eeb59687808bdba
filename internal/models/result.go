package models

import "time"

// RenderMetadata describes how a prompt was produced.
type RenderMetadata struct {
	Archetype        string    `json:"archetype"`
	DetectedFeatures []string  `json:"detected_features"`
	ConfidenceScore  int       `json:"confidence_score"`
	TemplateID       string    `json:"template_id"`
	GeneratedAt      time.Time `json:"generated_at"`
}

// RenderResult is the engine's sole output. Prompt and Error are mutually
// exclusive; a result is never partially successful.
type RenderResult struct {
	Success  bool           `json:"success"`
	Prompt   string         `json:"prompt,omitempty"`
	Error    string         `json:"error,omitempty"`
	Metadata RenderMetadata `json:"metadata"`
}

// Failure builds an unsuccessful result carrying only the error message.
func Failure(message string) RenderResult {
	return RenderResult{Success: false, Error: message}
}
