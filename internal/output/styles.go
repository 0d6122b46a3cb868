package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	// ColorCyan is used for identifiable nouns: entity kinds, file names.
	ColorCyan = lipgloss.Color("14")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorYellow is used for warnings in summaries.
	ColorYellow = lipgloss.Color("220")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)

	// StyleWarn styles warning counts.
	StyleWarn = lipgloss.NewStyle().Foreground(ColorYellow)

	styleCheck = lipgloss.NewStyle().Foreground(ColorGreenCheck)
)

// FormatWritten renders the line printed for each written file.
func FormatWritten(kind, path string) string {
	return fmt.Sprintf("%s %s %s", styleCheck.Render("✔"), StyleNoun.Render(kind), StyleDim.Render(path))
}

// FormatSummary renders the closing line of a run.
func FormatSummary(files, entities, warnings int) string {
	line := StyleSummary.Render(fmt.Sprintf("Generated %d files for %d entities", files, entities))
	if warnings > 0 {
		line += " " + StyleWarn.Render(fmt.Sprintf("(%d warnings)", warnings))
	}

	return line
}
