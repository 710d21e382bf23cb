// Package tui renders the dashboard: stat summary, kanban board, project
// creation form, and the per-project detail view with its client-facing
// read-only variant. It reads from the store and routes every mutation
// through named store operations on the UI goroutine; the only background
// work is the oracle call, whose result comes back as a message.
package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"trafficpro/internal/domain"
	"trafficpro/internal/store"
)

// Advisor is the slice of the oracle the TUI needs. Nil means the feature is
// unavailable (no API key) and the related actions are disabled.
type Advisor interface {
	StrategicAdvice(ctx context.Context, p domain.Project) (domain.AIInsight, error)
	ExtractMetrics(ctx context.Context, image []byte, mimeType string) (domain.MetricData, error)
}

type mode int

const (
	modeManager mode = iota
	modeClient
	modeNotFound
)

type screen int

const (
	screenBoard screen = iota
	screenForm
	screenDetail
)

// Deps wires the model to the rest of the application.
type Deps struct {
	Store       *store.Store
	Advisor     Advisor
	ShareOrigin string
	Log         *zap.Logger
}

// Model is the single bubbletea model for the whole session. The mode
// (manager vs client view) is decided once at construction and never
// re-evaluated.
type Model struct {
	ctx   context.Context
	store *store.Store
	adv   Advisor
	log   *zap.Logger

	mode   mode
	screen screen

	width  int
	height int

	shareOrigin string

	filter    textinput.Model
	filtering bool

	board  boardState
	form   formState
	detail detailState

	spin spinner.Model

	// clientID is the project resolved from the share link, in client mode.
	clientID string

	notice string
}

// New builds the manager dashboard model.
func New(ctx context.Context, deps Deps) Model {
	m := base(ctx, deps)
	m.mode = modeManager
	m.screen = screenBoard
	return m
}

// NewClientView builds the restricted read-only model for a shared link. An
// unknown project id yields the not-found display rather than an error.
func NewClientView(ctx context.Context, deps Deps, projectID string) Model {
	m := base(ctx, deps)
	if _, ok := deps.Store.Get(projectID); !ok {
		m.mode = modeNotFound
		return m
	}
	m.mode = modeClient
	m.clientID = projectID
	m.screen = screenDetail
	m.detail = newDetailState(projectID)
	return m
}

func base(ctx context.Context, deps Deps) Model {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	filter := textinput.New()
	filter.Placeholder = "Buscar por cliente ou empresa..."
	filter.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:         ctx,
		store:       deps.Store,
		adv:         deps.Advisor,
		log:         deps.Log,
		shareOrigin: deps.ShareOrigin,
		filter:      filter,
		spin:        sp,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.detail.advicePending && !m.detail.analyzePending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case adviceMsg:
		return m.applyAdvice(msg)

	case metricsMsg:
		return m.applyMetrics(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeNotFound:
			if msg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		case modeClient:
			return m.updateClientKeys(msg)
		}
		switch m.screen {
		case screenBoard:
			return m.updateBoard(msg)
		case screenForm:
			return m.updateForm(msg)
		case screenDetail:
			return m.updateDetail(msg)
		}
	}
	return m, nil
}

func (m Model) View() string {
	switch m.mode {
	case modeNotFound:
		return notFoundView()
	case modeClient:
		p, ok := m.store.Get(m.clientID)
		if !ok {
			return notFoundView()
		}
		return m.clientView(p)
	}

	switch m.screen {
	case screenForm:
		return m.formView()
	case screenDetail:
		return m.detailView()
	default:
		return m.boardView()
	}
}

// openDetail switches to the detail screen for the given project.
func (m Model) openDetail(projectID string) Model {
	m.screen = screenDetail
	m.detail = newDetailState(projectID)
	m.notice = ""
	return m
}

// project resolves the project the detail screen is showing. The second
// result is false when it was removed out from under us (cannot happen in
// current scope, projects are never deleted).
func (m Model) detailProject() (domain.Project, bool) {
	return m.store.Get(m.detail.projectID)
}

// Run starts the manager TUI and blocks until quit.
func Run(ctx context.Context, deps Deps, out io.Writer) error {
	p := tea.NewProgram(New(ctx, deps), tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// RunClientView starts the read-only client TUI for a share-link project id.
func RunClientView(ctx context.Context, deps Deps, projectID string, out io.Writer) error {
	p := tea.NewProgram(NewClientView(ctx, deps, projectID), tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func money(v float64) string {
	return fmt.Sprintf("R$ %.0f", v)
}
