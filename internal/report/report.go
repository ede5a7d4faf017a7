// Package report renders the end-of-run summary shown with --summary.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.Color("#7C3AED")
	warnColor    = lipgloss.Color("#F59E0B")
	mutedColor   = lipgloss.Color("#9CA3AF")
	borderColor  = lipgloss.Color("#374151")

	boxStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	labelStyle = lipgloss.NewStyle().Foreground(mutedColor)
	warnStyle  = lipgloss.NewStyle().Foreground(warnColor).Bold(true)
)

// Summary collects the figures of one conversion.
type Summary struct {
	Input             string
	Output            string
	K                 int
	Weight            string
	Unitigs           int
	Annotations       int
	Edges             int
	DoubledNodes      int
	Arcs              int
	SelfComplemental  int
	OverlapMismatches int
	Digest            string
	PeakMemory        string
	Elapsed           time.Duration
}

type row struct {
	label string
	value string
}

func (s Summary) rows() []row {
	output := s.Output
	if output == "" || output == "-" {
		output = "stdout"
	}
	return []row{
		{"input", s.Input},
		{"output", output},
		{"k", fmt.Sprint(s.K)},
		{"weight", s.Weight},
		{"unitigs", fmt.Sprint(s.Unitigs)},
		{"annotations", fmt.Sprint(s.Annotations)},
		{"edges", fmt.Sprint(s.Edges)},
		{"doubled nodes", fmt.Sprint(s.DoubledNodes)},
		{"arcs", fmt.Sprint(s.Arcs)},
		{"self-complemental", fmt.Sprint(s.SelfComplemental)},
		{"overlap mismatches", fmt.Sprint(s.OverlapMismatches)},
		{"blake3", s.Digest},
		{"peak heap", s.PeakMemory},
		{"elapsed", s.Elapsed.Round(time.Millisecond).String()},
	}
}

// Render lays the summary out as a bordered two-column box.
func Render(s Summary) string {
	rows := s.rows()
	width := 0
	for _, r := range rows {
		if len(r.label) > width {
			width = len(r.label)
		}
	}
	lines := []string{titleStyle.Render("arc-centric graph written"), ""}
	for _, r := range rows {
		value := r.value
		if r.label == "overlap mismatches" && s.OverlapMismatches > 0 {
			value = warnStyle.Render(value)
		}
		lines = append(lines, labelStyle.Render(r.label+strings.Repeat(" ", width-len(r.label)))+"  "+value)
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
