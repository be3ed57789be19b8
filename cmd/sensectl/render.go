package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/johncui/senses/pkg/model"
)

var (
	sapphire = lipgloss.Color("#74c7ec")
	green    = lipgloss.Color("#a6e3a1")
	peach    = lipgloss.Color("#fab387")
	red      = lipgloss.Color("#f38ba8")
	subtext  = lipgloss.Color("#a6adc8")

	titleStyle = lipgloss.NewStyle().Foreground(sapphire).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(subtext)
	hotStyle   = lipgloss.NewStyle().Foreground(peach).Bold(true)
	paneStyle  = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(subtext).
			Padding(0, 1)
)

func qualityStyle(q string) lipgloss.Style {
	switch q {
	case "pleasant":
		return lipgloss.NewStyle().Foreground(green)
	case "unpleasant":
		return lipgloss.NewStyle().Foreground(red)
	}
	return lipgloss.NewStyle()
}

func printExperience(w io.Writer, name string, res model.Experience) {
	if res.Empty() {
		fmt.Fprintln(w, labelStyle.Render(name+" is sleeping and cannot experience anything."))
		return
	}
	rec := res.Integrated

	var b strings.Builder
	fmt.Fprintln(&b, titleStyle.Render(name+"'s Sensory Experience"))
	fmt.Fprintf(&b, "%s %.2f\n", labelStyle.Render("Consciousness Level:"), rec.ConsciousnessLevel)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Attention Focus:"), rec.AttentionFocus)
	fmt.Fprintf(&b, "%s %.2f\n", labelStyle.Render("Overall Intensity:"), rec.OverallIntensity)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Dominant Sense:"), hotStyle.Render(string(rec.DominantSense)))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Experience Quality:"), qualityStyle(rec.Quality).Render(rec.Quality))

	b.WriteString("\n" + labelStyle.Render("Individual Sensory Inputs:") + "\n")
	for _, s := range model.Senses {
		r, ok := res.Senses[s]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  %-8s %s (intensity: %.2f)\n", s, r.Quality, r.Intensity)
	}
	for _, skipped := range res.Skipped {
		fmt.Fprintf(&b, "  %-8s %s\n", skipped, labelStyle.Render("skipped: unknown sense"))
	}

	fmt.Fprintln(w, paneStyle.Render(strings.TrimRight(b.String(), "\n")))
}

func printStats(w io.Writer, st model.Stats) {
	rows := []struct {
		label string
		value any
	}{
		{"Total Visual Experiences", st.Visual},
		{"Total Auditory Experiences", st.Auditory},
		{"Total Tactile Experiences", st.Tactile},
		{"Total Olfactory Experiences", st.Olfactory},
		{"Total Gustatory Experiences", st.Gustatory},
		{"Total Integrated Experiences", st.Integrated},
		{"Consciousness Level", st.ConsciousnessLevel},
		{"Attention Focus", st.AttentionFocus},
	}
	fmt.Fprintln(w, titleStyle.Render("Sensory Statistics"))
	for _, r := range rows {
		fmt.Fprintf(w, "%s %v\n", labelStyle.Render(r.label+":"), r.value)
	}
}
