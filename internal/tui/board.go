package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trafficpro/internal/domain"
	"trafficpro/internal/ui"
)

// boardState tracks kanban navigation: the focused column (stage) and the
// focused card inside it.
type boardState struct {
	col int
	row int
}

// columns groups the filtered projects by stage, in pipeline order.
func (m Model) columns() [][]domain.Project {
	stages := domain.AllStages()
	cols := make([][]domain.Project, len(stages))
	for _, p := range m.store.List(m.filter.Value()) {
		for i, s := range stages {
			if p.Stage == s {
				cols[i] = append(cols[i], p)
				break
			}
		}
	}
	return cols
}

func (m Model) focusedProject() (domain.Project, bool) {
	cols := m.columns()
	if m.board.col < 0 || m.board.col >= len(cols) {
		return domain.Project{}, false
	}
	col := cols[m.board.col]
	if m.board.row < 0 || m.board.row >= len(col) {
		return domain.Project{}, false
	}
	return col[m.board.row], true
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		switch msg.String() {
		case "enter", "esc":
			m.filtering = false
			m.filter.Blur()
			m.board = boardState{}
			return m, nil
		default:
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.filtering = true
		m.filter.Focus()
		return m, nil
	case "left", "h":
		if m.board.col > 0 {
			m.board.col--
			m.board.row = 0
		}
		return m, nil
	case "right", "l":
		if m.board.col < len(domain.AllStages())-1 {
			m.board.col++
			m.board.row = 0
		}
		return m, nil
	case "up", "k":
		if m.board.row > 0 {
			m.board.row--
		}
		return m, nil
	case "down", "j":
		if col := m.columns()[m.board.col]; m.board.row < len(col)-1 {
			m.board.row++
		}
		return m, nil
	case "m":
		if p, ok := m.focusedProject(); ok {
			m.store.AdvanceStage(p.ID)
		}
		return m, nil
	case "n":
		m.screen = screenForm
		m.form = newFormState()
		m.notice = ""
		return m, nil
	case "enter":
		if p, ok := m.focusedProject(); ok {
			return m.openDetail(p.ID), nil
		}
		return m, nil
	}
	return m, nil
}

func (m Model) boardView() string {
	var b strings.Builder

	b.WriteString(ui.Title.Render("TRAFFICPRO") + ui.Muted.Render("  central estratégica de tráfego pago") + "\n\n")
	b.WriteString(m.statsRow() + "\n\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(ui.Key.Render("filtro: ") + m.filter.View() + "\n\n")
	}

	cols := m.columns()
	rendered := make([]string, len(cols))
	for i, stage := range domain.AllStages() {
		rendered[i] = m.columnView(stage, cols[i], i == m.board.col)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))

	b.WriteString("\n" + ui.Muted.Render("←/→ coluna · ↑/↓ projeto · enter detalhes · m avançar etapa · n novo · / buscar · q sair"))
	if m.notice != "" {
		b.WriteString("\n" + ui.Warn.Render(m.notice))
	}
	return b.String()
}

func (m Model) statsRow() string {
	stats := m.store.Stats()
	cards := []string{
		ui.StatCard.Render(ui.Muted.Render("Projetos Ativos") + "\n" + ui.H2.Render(fmt.Sprintf("%d", stats.TotalActiveProjects))),
		ui.StatCard.Render(ui.Muted.Render("Clientes") + "\n" + ui.H2.Render(fmt.Sprintf("%d", stats.TotalClients))),
		ui.StatCard.Render(ui.Muted.Render("Investimento") + "\n" + ui.H2.Render(money(stats.TotalManagedSpend))),
		ui.StatCard.Render(ui.Muted.Render("ROI Médio") + "\n" + ui.H2.Render(fmt.Sprintf("%.1fx", stats.AverageROI))),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) columnView(stage domain.Stage, projects []domain.Project, focused bool) string {
	var b strings.Builder
	b.WriteString(ui.StageStyle(stage).Render(strings.ToUpper(string(stage))))
	b.WriteString(ui.Muted.Render(fmt.Sprintf(" (%d)", len(projects))))
	b.WriteString("\n")

	for i, p := range projects {
		line := fmt.Sprintf("%s\n%s · %s", p.ClientName, p.Company, money(p.MonthlyBudget))
		if focused && i == m.board.row {
			b.WriteString(ui.PanelFocus.Render(ui.SelectedRow.Render(line)))
		} else {
			b.WriteString(ui.Panel.Render(line))
		}
		b.WriteString("\n")
	}
	if len(projects) == 0 {
		b.WriteString(ui.Muted.Render("—") + "\n")
	}

	style := lipgloss.NewStyle().Width(34).MarginRight(1)
	return style.Render(b.String())
}
