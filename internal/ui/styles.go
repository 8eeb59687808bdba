package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Colors adapt to the terminal background; APPFORGE_THEME forces a theme.
var (
	ColorPrimary  lipgloss.Color
	ColorAccent   lipgloss.Color
	ColorSuccess  lipgloss.Color
	ColorError    lipgloss.Color
	ColorText     lipgloss.Color
	ColorTextDim  lipgloss.Color
	ColorBorder   lipgloss.Color
	ColorSurface  lipgloss.Color
)

func initializeColors() {
	switch os.Getenv("APPFORGE_THEME") {
	case "light":
		setLightThemeColors()
		return
	case "dark":
		setDarkThemeColors()
		return
	}

	if lipgloss.HasDarkBackground() {
		setDarkThemeColors()
	} else {
		setLightThemeColors()
	}
}

func setDarkThemeColors() {
	ColorPrimary = lipgloss.Color("205")
	ColorAccent = lipgloss.Color("214")
	ColorSuccess = lipgloss.Color("10")
	ColorError = lipgloss.Color("9")
	ColorText = lipgloss.Color("252")
	ColorTextDim = lipgloss.Color("240")
	ColorBorder = lipgloss.Color("238")
	ColorSurface = lipgloss.Color("236")
}

func setLightThemeColors() {
	ColorPrimary = lipgloss.Color("125")
	ColorAccent = lipgloss.Color("130")
	ColorSuccess = lipgloss.Color("22")
	ColorError = lipgloss.Color("160")
	ColorText = lipgloss.Color("232")
	ColorTextDim = lipgloss.Color("244")
	ColorBorder = lipgloss.Color("248")
	ColorSurface = lipgloss.Color("254")
}

// Component styles
var (
	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	StyleText = lipgloss.NewStyle().
			Foreground(ColorText)

	StyleTextDim = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	StyleFocused = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	StyleUnselected = lipgloss.NewStyle().
			Foreground(ColorTextDim).
			Padding(0, 1)

	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true).
			Padding(0, 1)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true).
			Padding(0, 1)

	StyleMetadata = lipgloss.NewStyle().
			Foreground(ColorTextDim).
			Padding(0, 1)

	StyleFormLabel = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	StyleFormHelp = lipgloss.NewStyle().
			Foreground(ColorTextDim).
			Italic(true).
			Padding(0, 3)

	StyleContentContainer = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(1, 2).
				MarginTop(1).
				MarginBottom(1)
)

// CreateOption renders a selectable option with its description lines.
func CreateOption(label, description string, isSelected bool) []string {
	var style lipgloss.Style
	prefix := "  "
	if isSelected {
		style = StyleFocused
		prefix = "▶ "
	} else {
		style = StyleUnselected
	}

	lines := []string{style.Render(prefix + label)}
	if description != "" {
		lines = append(lines, StyleFormHelp.Render(description))
	}
	lines = append(lines, "")
	return lines
}

// CreateHelp renders dimmed keybinding help text.
func CreateHelp(text string) string {
	return StyleTextDim.Render(text)
}
