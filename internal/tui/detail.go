package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trafficpro/internal/domain"
	"trafficpro/internal/share"
	"trafficpro/internal/ui"
)

type detailTab int

const (
	tabReports detailTab = iota
	tabAssistant
	tabTimeline
)

func (t detailTab) label() string {
	switch t {
	case tabAssistant:
		return "Assistente IA"
	case tabTimeline:
		return "Timeline"
	default:
		return "Relatórios"
	}
}

type inputMode int

const (
	inputNone inputMode = iota
	inputScreenshot
	inputEvent
)

// detailState is the per-project detail screen. Pending flags gate the oracle
// actions so a call cannot be re-fired while one is in flight.
type detailState struct {
	projectID string
	tab       detailTab

	advicePending  bool
	analyzePending bool

	linkShown bool

	row int // checklist cursor on the reports tab

	entering inputMode
	input    textinput.Model
}

func newDetailState(projectID string) detailState {
	in := textinput.New()
	in.CharLimit = 200
	return detailState{projectID: projectID, input: in}
}

// managerTabs and clientTabs differ: the shared client link never exposes the
// assistant tab.
func managerTabs() []detailTab { return []detailTab{tabReports, tabAssistant, tabTimeline} }
func clientTabs() []detailTab  { return []detailTab{tabReports, tabTimeline} }

func cycleTab(cur detailTab, tabs []detailTab, dir int) detailTab {
	idx := 0
	for i, t := range tabs {
		if t == cur {
			idx = i
			break
		}
	}
	return tabs[(idx+dir+len(tabs))%len(tabs)]
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p, ok := m.detailProject()
	if !ok {
		m.screen = screenBoard
		return m, nil
	}

	if m.detail.entering != inputNone {
		switch msg.String() {
		case "esc":
			m.detail.entering = inputNone
			m.detail.input.Blur()
			return m, nil
		case "enter":
			value := strings.TrimSpace(m.detail.input.Value())
			mode := m.detail.entering
			m.detail.entering = inputNone
			m.detail.input.Blur()
			m.detail.input.SetValue("")
			if value == "" {
				return m, nil
			}
			switch mode {
			case inputScreenshot:
				m.detail.analyzePending = true
				m.notice = ""
				return m, tea.Batch(m.analyzeCmd(p.ID, value), m.spin.Tick)
			case inputEvent:
				m.store.AddTimelineEvent(p.ID, domain.TimelineEvent{Title: value})
				m.notice = "Evento adicionado à timeline."
				return m, nil
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.detail.input, cmd = m.detail.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc", "q":
		m.screen = screenBoard
		m.notice = ""
		return m, nil

	case "tab":
		m.detail.tab = cycleTab(m.detail.tab, managerTabs(), 1)
		m.detail.row = 0
		return m, nil

	case "shift+tab":
		m.detail.tab = cycleTab(m.detail.tab, managerTabs(), -1)
		m.detail.row = 0
		return m, nil

	case "g":
		if m.adv == nil || m.detail.advicePending {
			return m, nil
		}
		m.detail.advicePending = true
		m.notice = ""
		return m, tea.Batch(m.adviceCmd(p), m.spin.Tick)

	case "u":
		if m.adv == nil || m.detail.analyzePending {
			return m, nil
		}
		m.detail.entering = inputScreenshot
		m.detail.input.Placeholder = "Caminho do screenshot (png/jpg/webp)"
		m.detail.input.Focus()
		return m, nil

	case "t":
		m.detail.entering = inputEvent
		m.detail.input.Placeholder = "Título do evento"
		m.detail.input.Focus()
		return m, nil

	case "s":
		m.detail.linkShown = !m.detail.linkShown
		return m, nil

	case "m":
		m.store.AdvanceStage(p.ID)
		return m, nil

	case "j", "down":
		if m.detail.tab == tabReports && m.detail.row < len(p.Checklist)-1 {
			m.detail.row++
		}
		return m, nil

	case "k", "up":
		if m.detail.tab == tabReports && m.detail.row > 0 {
			m.detail.row--
		}
		return m, nil

	case " ":
		if m.detail.tab == tabReports && m.detail.row < len(p.Checklist) {
			m.store.ToggleChecklistItem(p.ID, p.Checklist[m.detail.row].ID)
		}
		return m, nil
	}
	return m, nil
}

// updateClientKeys handles the read-only client view. Only tab switching and
// quitting are allowed; every mutation key falls through to nothing.
func (m Model) updateClientKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "tab":
		m.detail.tab = cycleTab(m.detail.tab, clientTabs(), 1)
		return m, nil
	case "shift+tab":
		m.detail.tab = cycleTab(m.detail.tab, clientTabs(), -1)
		return m, nil
	}
	return m, nil
}

func (m Model) detailView() string {
	p, ok := m.detailProject()
	if !ok {
		return notFoundView()
	}

	var b strings.Builder
	b.WriteString(m.detailHeader(p, managerTabs()))

	switch m.detail.tab {
	case tabAssistant:
		b.WriteString(m.assistantView(p))
	case tabTimeline:
		b.WriteString(timelineView(p))
	default:
		b.WriteString(m.reportsView(p, true))
	}

	if m.detail.linkShown {
		b.WriteString("\n" + ui.Gold.Render("Link do cliente: ") + share.Link(m.shareOrigin, p.ID) + "\n")
	}
	if m.detail.entering != inputNone {
		b.WriteString("\n" + m.detail.input.View() + "\n")
	}

	help := "tab aba · g análise IA · u screenshot · t evento · espaço tarefa · s link · m etapa · esc voltar"
	if m.adv == nil {
		help = "tab aba · t evento · espaço tarefa · s link · m etapa · esc voltar"
	}
	b.WriteString("\n" + ui.Muted.Render(help))
	if m.notice != "" {
		b.WriteString("\n" + ui.Warn.Render(m.notice))
	}
	return b.String()
}

// clientView is the read-only rendition behind a share link. No actions, no
// assistant tab, no checklist cursor.
func (m Model) clientView(p domain.Project) string {
	var b strings.Builder
	b.WriteString(m.detailHeader(p, clientTabs()))

	if m.detail.tab == tabTimeline {
		b.WriteString(timelineView(p))
	} else {
		b.WriteString(m.reportsView(p, false))
	}

	b.WriteString("\n" + ui.Muted.Render("Visão do cliente · tab aba · q sair"))
	return b.String()
}

func (m Model) detailHeader(p domain.Project, tabs []detailTab) string {
	var b strings.Builder
	title := fmt.Sprintf("%s · %s", p.ClientName, p.Company)
	b.WriteString(ui.Title.Render(title) + "  " + ui.StageStyle(p.Stage).Render(string(p.Stage)) + "\n")
	b.WriteString(ui.Muted.Render(fmt.Sprintf("%s · %s · %s/mês · meta %s",
		p.Niche, strings.Join(p.Platforms, ", "), money(p.MonthlyBudget), p.TargetMetric)) + "\n\n")

	var parts []string
	for _, t := range tabs {
		l := t.label()
		if t == m.detail.tab {
			parts = append(parts, ui.Key.Render("["+l+"]"))
		} else {
			parts = append(parts, ui.Muted.Render(" "+l+" "))
		}
	}
	b.WriteString(strings.Join(parts, " ") + "\n\n")
	return b.String()
}

// reportsView shows the latest metrics and, for the manager, the checklist
// with its cursor.
func (m Model) reportsView(p domain.Project, manager bool) string {
	var b strings.Builder

	if latest, ok := p.LatestMetric(); ok {
		b.WriteString(ui.H2.Render("Último Relatório ("+latest.Date+")") + "\n")
		rows := []struct {
			label string
			value string
		}{
			{"Investimento", money(latest.Spend)},
			{"Vendas", fmt.Sprintf("%.0f", latest.Sales)},
			{"Leads", fmt.Sprintf("%.0f", latest.Leads)},
			{"ROI", fmt.Sprintf("%.2f", latest.ROI)},
			{"CPA", fmt.Sprintf("R$ %.2f", latest.CPA)},
			{"CTR", fmt.Sprintf("%.2f%%", latest.CTR)},
			{"CPM", fmt.Sprintf("R$ %.2f", latest.CPM)},
			{"Frequência", fmt.Sprintf("%.2f", latest.Frequency)},
		}
		var cards []string
		for _, r := range rows {
			cards = append(cards, ui.StatCard.Render(ui.Muted.Render(r.label)+"\n"+r.value))
		}
		half := len(cards) / 2
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards[:half]...) + "\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards[half:]...) + "\n")
		if latest.ManagerAnalysis != "" {
			b.WriteString(ui.Muted.Render("Análise: ") + latest.ManagerAnalysis + "\n")
		}
		if len(p.Metrics) > 1 {
			b.WriteString(ui.Muted.Render(fmt.Sprintf("%d relatórios no histórico.", len(p.Metrics))) + "\n")
		}
	} else {
		b.WriteString(ui.Muted.Render("Nenhum relatório ainda.") + "\n")
	}

	b.WriteString("\n" + ui.H2.Render("Checklist do Funil") + "\n")
	if len(p.Checklist) == 0 {
		b.WriteString(ui.Muted.Render("Sem tarefas.") + "\n")
	}
	for i, it := range p.Checklist {
		box := "[ ]"
		if it.Completed {
			box = ui.Good.Render("[x]")
		}
		line := fmt.Sprintf("%s %s", box, it.Label)
		if manager && m.detail.tab == tabReports && i == m.detail.row {
			line = ui.SelectedRow.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) assistantView(p domain.Project) string {
	var b strings.Builder

	if m.detail.advicePending {
		b.WriteString(m.spin.View() + " Consultando a Gemini...\n")
		return b.String()
	}
	if m.detail.analyzePending {
		b.WriteString(m.spin.View() + " Analisando screenshot...\n")
		return b.String()
	}

	in := p.LastInsight
	if in == nil {
		b.WriteString(ui.Muted.Render("Nenhuma análise ainda. Pressione g para gerar.") + "\n")
		return b.String()
	}

	b.WriteString(ui.StatusBadge(in.Status) + "  " + ui.H2.Render(in.Summary) + "\n\n")
	b.WriteString(ui.Key.Render("Diagnóstico: ") + in.Diagnosis + "\n")
	b.WriteString(ui.Key.Render("Por quê: ") + in.Why + "\n\n")
	b.WriteString(ui.H2.Render("Plano de Ação") + "\n")
	for _, s := range in.ActionPlan {
		b.WriteString(fmt.Sprintf("%s %s (%s)\n    %s\n",
			ui.ImpactBadge(s.Impact), s.Title, s.Category, s.Description))
	}
	return b.String()
}

func timelineView(p domain.Project) string {
	var b strings.Builder
	b.WriteString(ui.H2.Render("Timeline") + "\n")
	if len(p.Timeline) == 0 {
		b.WriteString(ui.Muted.Render("Nenhum evento registrado.") + "\n")
		return b.String()
	}
	for _, ev := range p.Timeline {
		b.WriteString(fmt.Sprintf("%s  %s\n", ui.Muted.Render(ev.Date), ui.Key.Render(ev.Title)))
		if ev.Description != "" {
			b.WriteString("            " + ev.Description + "\n")
		}
	}
	return b.String()
}

func notFoundView() string {
	return ui.Panel.Render(
		ui.Bad.Render("Projeto não encontrado") + "\n" +
			ui.Muted.Render("O link pode ter expirado ou o projeto foi removido.") + "\n\n" +
			ui.Muted.Render("q sair"))
}
