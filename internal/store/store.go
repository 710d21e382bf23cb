// Package store owns the in-memory project list for the session. All mutation
// goes through named operations here so the presentation layer can stay
// read-only, and so behavior is unit-testable without a terminal.
//
// The store is owned by the single UI goroutine. Background work (the oracle
// call) never touches it directly; results come back as messages and are
// applied on the UI goroutine.
package store

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trafficpro/internal/domain"
	"trafficpro/internal/funnel"
)

// Store holds the mutable project list, newest-first.
type Store struct {
	projects []domain.Project
	now      func() time.Time
	log      *zap.Logger
}

// Option tweaks store construction.
type Option func(*Store)

// WithClock injects the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns an empty store.
func New(log *zap.Logger, opts ...Option) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{now: time.Now, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the projects whose client name or company contains filter,
// case-insensitively. An empty filter returns all projects in order; no match
// returns an empty slice, not an error.
func (s *Store) List(filter string) []domain.Project {
	needle := strings.ToLower(strings.TrimSpace(filter))
	out := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if needle == "" ||
			strings.Contains(strings.ToLower(p.ClientName), needle) ||
			strings.Contains(strings.ToLower(p.Company), needle) {
			out = append(out, p)
		}
	}
	return out
}

// Get looks up a project by id.
func (s *Store) Get(id string) (domain.Project, bool) {
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Project{}, false
}

// Draft carries the creation-form input. ClientName is required; an empty
// platform selection is permitted as a soft default.
type Draft struct {
	ClientName    string
	Company       string
	Niche         string
	Goal          string
	Platforms     []string
	MonthlyBudget float64
	TargetMetric  string
	FunnelType    domain.FunnelType
	// Checklist, when non-nil, is the checklist the form already generated
	// from the funnel template (last template selection wins). When nil the
	// store generates one from FunnelType.
	Checklist []domain.ChecklistItem
}

// Create materializes a project from the draft and inserts it at the head of
// the list (newest-first). Stage starts at Implementation, metrics start
// empty, and the checklist comes from the chosen funnel template.
func (s *Store) Create(d Draft) (domain.Project, error) {
	name := strings.TrimSpace(d.ClientName)
	if name == "" {
		return domain.Project{}, ErrClientNameRequired
	}

	ft := d.FunnelType
	if !ft.IsValid() {
		ft = domain.DefaultFunnel
	}
	checklist := d.Checklist
	if checklist == nil {
		checklist = funnel.Checklist(ft)
	}

	p := domain.Project{
		ID:            uuid.NewString(),
		ClientName:    name,
		Company:       strings.TrimSpace(d.Company),
		Niche:         strings.TrimSpace(d.Niche),
		Goal:          strings.TrimSpace(d.Goal),
		Platforms:     append([]string(nil), d.Platforms...),
		MonthlyBudget: d.MonthlyBudget,
		TargetMetric:  strings.TrimSpace(d.TargetMetric),
		Stage:         domain.StageImplementation,
		FunnelType:    ft,
		Metrics:       []domain.MetricData{},
		Checklist:     checklist,
		Timeline:      []domain.TimelineEvent{},
		Invoices:      []domain.Invoice{},
		CreatedAt:     s.now(),
	}

	s.projects = append([]domain.Project{p}, s.projects...)
	s.log.Info("project created",
		zap.String("id", p.ID),
		zap.String("client", p.ClientName),
		zap.String("funnel", string(ft)))
	return p, nil
}

// Update replaces the stored record matching p's id. Unknown ids are a silent
// no-op: last-write-wins, no conflict checking.
func (s *Store) Update(p domain.Project) {
	for i := range s.projects {
		if s.projects[i].ID == p.ID {
			s.projects[i] = p
			return
		}
	}
	s.log.Debug("update for unknown project ignored", zap.String("id", p.ID))
}

// AdvanceStage moves the project one step along the pipeline. Already at
// Scale, or unknown id, is a no-op.
func (s *Store) AdvanceStage(id string) {
	for i := range s.projects {
		if s.projects[i].ID != id {
			continue
		}
		next, ok := s.projects[i].Stage.Next()
		if !ok {
			return
		}
		s.projects[i].Stage = next
		s.log.Info("stage advanced",
			zap.String("id", id),
			zap.String("stage", string(next)))
		return
	}
}

// AttachInsight overwrites the project's insight. No history is retained.
func (s *Store) AttachInsight(id string, in domain.AIInsight) {
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects[i].LastInsight = &in
			return
		}
	}
}

// AppendMetric appends one snapshot to the project's metric sequence. The
// sequence is append-only; the latest metric is always the last element.
func (s *Store) AppendMetric(id string, m domain.MetricData) {
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects[i].Metrics = append(s.projects[i].Metrics, m)
			return
		}
	}
}

// AddTimelineEvent appends an event to the project's timeline. Events are
// kept in insertion order.
func (s *Store) AddTimelineEvent(id string, ev domain.TimelineEvent) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if !ev.Type.IsValid() {
		ev.Type = domain.EventMilestone
	}
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects[i].Timeline = append(s.projects[i].Timeline, ev)
			return
		}
	}
}

// ToggleChecklistItem flips the completed flag of one checklist item.
func (s *Store) ToggleChecklistItem(projectID, itemID string) {
	for i := range s.projects {
		if s.projects[i].ID != projectID {
			continue
		}
		for j := range s.projects[i].Checklist {
			if s.projects[i].Checklist[j].ID == itemID {
				s.projects[i].Checklist[j].Completed = !s.projects[i].Checklist[j].Completed
				return
			}
		}
		return
	}
}

// Len reports how many projects the store holds.
func (s *Store) Len() int { return len(s.projects) }
