package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"trafficpro/internal/domain"
	"trafficpro/internal/funnel"
	"trafficpro/internal/store"
	"trafficpro/internal/ui"
)

const (
	fieldClient = iota
	fieldCompany
	fieldNiche
	fieldGoal
	fieldBudget
	fieldTarget
	fieldPlatforms
	fieldFunnel
	fieldCount
)

// formState is the project-creation form. Selecting a funnel template
// regenerates the pending checklist from scratch: the last selection wins and
// earlier checklists are discarded, never merged.
type formState struct {
	inputs    []textinput.Model
	focus     int
	platforms map[string]bool
	platIdx   int
	funnelIdx int
	checklist []domain.ChecklistItem
}

func newFormState() formState {
	labels := []string{
		"Nome do Cliente",
		"Empresa",
		"Nicho",
		"Objetivo Principal",
		"Orçamento Mensal (R$)",
		"Meta de Resultado (Ex: ROI 3.0)",
	}
	inputs := make([]textinput.Model, len(labels))
	for i, l := range labels {
		in := textinput.New()
		in.Placeholder = l
		in.CharLimit = 80
		inputs[i] = in
	}
	inputs[0].Focus()

	f := formState{
		inputs:    inputs,
		platforms: map[string]bool{},
	}
	f.checklist = funnel.Checklist(f.funnelType())
	return f
}

func (f formState) funnelType() domain.FunnelType {
	all := domain.AllFunnels()
	if f.funnelIdx < 0 || f.funnelIdx >= len(all) {
		return domain.DefaultFunnel
	}
	return all[f.funnelIdx]
}

func (f formState) selectedPlatforms() []string {
	var out []string
	for _, p := range domain.AllowedPlatforms() {
		if f.platforms[p] {
			out = append(out, p)
		}
	}
	return out
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenBoard
		m.notice = ""
		return m, nil

	case "tab", "shift+tab", "up", "down":
		if m.form.focus < fieldPlatforms && (msg.String() == "up" || msg.String() == "down") {
			break // let text inputs keep arrow keys for history-free editing
		}
		dir := 1
		if msg.String() == "shift+tab" || msg.String() == "up" {
			dir = -1
		}
		m.form.focus = (m.form.focus + dir + fieldCount) % fieldCount
		for i := range m.form.inputs {
			if i == m.form.focus {
				m.form.inputs[i].Focus()
			} else {
				m.form.inputs[i].Blur()
			}
		}
		return m, nil

	case "left", "right", " ":
		switch m.form.focus {
		case fieldPlatforms:
			plats := domain.AllowedPlatforms()
			switch msg.String() {
			case "left":
				if m.form.platIdx > 0 {
					m.form.platIdx--
				}
			case "right":
				if m.form.platIdx < len(plats)-1 {
					m.form.platIdx++
				}
			default:
				p := plats[m.form.platIdx]
				m.form.platforms[p] = !m.form.platforms[p]
			}
			return m, nil
		case fieldFunnel:
			switch msg.String() {
			case "left":
				if m.form.funnelIdx > 0 {
					m.form.funnelIdx--
				}
			case "right":
				if m.form.funnelIdx < len(domain.AllFunnels())-1 {
					m.form.funnelIdx++
				}
			default:
				return m, nil
			}
			// Template switch: rebuild the checklist, dropping the old one.
			m.form.checklist = funnel.Checklist(m.form.funnelType())
			return m, nil
		}

	case "enter":
		if m.form.focus == fieldFunnel || m.form.focus == fieldPlatforms {
			return m.submitForm()
		}
		if m.form.focus == fieldTarget {
			return m.submitForm()
		}
		// Move to next field, form-style.
		m.form.focus++
		for i := range m.form.inputs {
			if i == m.form.focus {
				m.form.inputs[i].Focus()
			} else {
				m.form.inputs[i].Blur()
			}
		}
		return m, nil
	}

	if m.form.focus < len(m.form.inputs) {
		var cmd tea.Cmd
		m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	budget, _ := strconv.ParseFloat(strings.TrimSpace(m.form.inputs[fieldBudget].Value()), 64)
	if budget < 0 {
		budget = 0
	}

	p, err := m.store.Create(store.Draft{
		ClientName:    m.form.inputs[fieldClient].Value(),
		Company:       m.form.inputs[fieldCompany].Value(),
		Niche:         m.form.inputs[fieldNiche].Value(),
		Goal:          m.form.inputs[fieldGoal].Value(),
		Platforms:     m.form.selectedPlatforms(),
		MonthlyBudget: budget,
		TargetMetric:  m.form.inputs[fieldTarget].Value(),
		FunnelType:    m.form.funnelType(),
		Checklist:     m.form.checklist,
	})
	if err != nil {
		// Required-field marking: keep the form open, point at the gap.
		m.notice = "Nome do cliente é obrigatório."
		return m, nil
	}

	m.screen = screenBoard
	m.board = boardState{}
	m.notice = fmt.Sprintf("Projeto %s criado.", p.ClientName)
	return m, nil
}

func (m Model) formView() string {
	var b strings.Builder
	b.WriteString(ui.Title.Render("Novo Projeto") + "\n\n")

	labels := []string{"Cliente", "Empresa", "Nicho", "Objetivo", "Orçamento", "Meta"}
	for i, in := range m.form.inputs {
		marker := "  "
		if m.form.focus == i {
			marker = ui.Key.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%-10s %s\n", marker, labels[i], in.View()))
	}

	// Platforms
	marker := "  "
	if m.form.focus == fieldPlatforms {
		marker = ui.Key.Render("> ")
	}
	b.WriteString("\n" + marker + ui.H2.Render("Plataformas") + "\n  ")
	for i, p := range domain.AllowedPlatforms() {
		tag := "[ ] " + p
		if m.form.platforms[p] {
			tag = "[x] " + p
		}
		if m.form.focus == fieldPlatforms && i == m.form.platIdx {
			tag = ui.SelectedRow.Render(tag)
		}
		b.WriteString(tag + "  ")
	}
	b.WriteString("\n")

	// Funnel template
	marker = "  "
	if m.form.focus == fieldFunnel {
		marker = ui.Key.Render("> ")
	}
	b.WriteString("\n" + marker + ui.H2.Render("Template de Funil") + "\n")
	for i, f := range domain.AllFunnels() {
		tpl := funnel.Resolve(f)
		line := fmt.Sprintf("  ( ) %s (%d etapas automáticas)", tpl.Label, len(tpl.Tasks))
		if i == m.form.funnelIdx {
			line = fmt.Sprintf("  (•) %s (%d etapas automáticas)", tpl.Label, len(tpl.Tasks))
			if m.form.focus == fieldFunnel {
				line = ui.SelectedRow.Render(line)
			}
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + ui.Muted.Render("tab campo · ←/→ opção · espaço marcar · enter criar · esc cancelar"))
	if m.notice != "" {
		b.WriteString("\n" + ui.Warn.Render(m.notice))
	}
	return b.String()
}
