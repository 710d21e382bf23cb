// Package ui holds the shared lipgloss theme for the TUI.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"trafficpro/internal/domain"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelFocus  = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cPrimary).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	StatCard    = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 2)
)

var stageColors = map[domain.Stage]lipgloss.Color{
	domain.StageImplementation: cWarn,
	domain.StageValidation:     cPrimary,
	domain.StagePreScale:       cAccent,
	domain.StageScale:          cGood,
}

// StageStyle returns the header style for a kanban column.
func StageStyle(s domain.Stage) lipgloss.Style {
	c, ok := stageColors[s]
	if !ok {
		c = cMuted
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}

var statusStyles = map[domain.InsightStatus]lipgloss.Style{
	domain.StatusHealthy:     Good,
	domain.StatusWarning:     Warn,
	domain.StatusCritical:    Bad,
	domain.StatusOpportunity: Gold,
}

// StatusBadge renders an insight status in its signal color.
func StatusBadge(s domain.InsightStatus) string {
	st, ok := statusStyles[s]
	if !ok {
		st = Muted
	}
	return st.Render(string(s))
}

var impactStyles = map[domain.Impact]lipgloss.Style{
	domain.ImpactHigh:   Bad,
	domain.ImpactMedium: Warn,
	domain.ImpactLow:    Muted,
}

// ImpactBadge renders a suggestion impact grade.
func ImpactBadge(i domain.Impact) string {
	st, ok := impactStyles[i]
	if !ok {
		st = Muted
	}
	return st.Render(string(i))
}
