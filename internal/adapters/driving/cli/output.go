package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/medlens/internal/core/domain"
)

const noMatchMessage = "No match found"

// Colour palette for styled output.
var (
	colourPrimary = lipgloss.Color("#7C3AED")
	colourMuted   = lipgloss.Color("#6C7086")
	colourSuccess = lipgloss.Color("#A6E3A1")
	colourWarning = lipgloss.Color("#F9E2AF")
	colourBorder  = lipgloss.Color("#45475A")
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colourBorder).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colourPrimary)
	labelStyle = lipgloss.NewStyle().Foreground(colourMuted).Width(14)
	highStyle  = lipgloss.NewStyle().Foreground(colourSuccess).Bold(true)
	lowStyle   = lipgloss.NewStyle().Foreground(colourWarning).Bold(true)
)

// highConfidence is where the confidence badge turns from warning to success.
const highConfidence = 0.85

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type field struct {
	label string
	value string
}

func matchFields(m *domain.MatchResult) []field {
	return []field{
		{"Generic Name", m.GenericName},
		{"Composition", m.Composition},
		{"Uses", m.Uses},
		{"Side Effects", m.SideEffects},
		{"Manufacturer", m.Manufacturer},
		{"Source", m.Source.String()},
	}
}

func formatConfidence(c float64) string {
	return fmt.Sprintf("%.0f%%", c*100)
}

// writeMatch prints a match as a bordered card on a terminal, or as
// aligned "Label: value" lines otherwise.
func writeMatch(w io.Writer, m *domain.MatchResult) {
	if isTerminal(w) {
		fmt.Fprintln(w, renderCard(m))
		return
	}
	fmt.Fprintf(w, "%-14s%s\n", "Brand Name:", m.BrandName)
	for _, f := range matchFields(m) {
		fmt.Fprintf(w, "%-14s%s\n", f.label+":", f.value)
	}
	fmt.Fprintf(w, "%-14s%s\n", "Confidence:", formatConfidence(m.Confidence))
}

func renderCard(m *domain.MatchResult) string {
	badge := lowStyle
	if m.Confidence >= highConfidence {
		badge = highStyle
	}

	lines := []string{
		titleStyle.Render(m.BrandName) + "  " + badge.Render(formatConfidence(m.Confidence)),
		"",
	}
	for _, f := range matchFields(m) {
		lines = append(lines, labelStyle.Render(f.label)+f.value)
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

// writeResolution prints a resolution, or the no-match notice.
func writeResolution(w io.Writer, res *domain.Resolution) {
	if !res.Resolved() {
		if res.Candidate == "" {
			fmt.Fprintln(w, noMatchMessage)
			return
		}
		fmt.Fprintf(w, "%s for %q\n", noMatchMessage, res.Candidate)
		return
	}
	writeMatch(w, res.Match)
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// writeLikelihood prints the classifier verdict and its matched patterns.
func writeLikelihood(w io.Writer, l domain.Likelihood) {
	verdict := "no"
	if l.IsMedicine {
		verdict = "yes"
	}
	fmt.Fprintf(w, "Medicine-related: %s (confidence %.2f)\n", verdict, l.Confidence)
	for _, p := range l.Patterns {
		fmt.Fprintf(w, "  %-10s %.2f  %s\n", p.Type, p.Weight, strings.Join(p.Matches, ", "))
	}
}
