package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trafficpro/internal/domain"
	"trafficpro/internal/funnel"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return New(zap.NewNop(), WithClock(func() time.Time { return fixed }))
}

func TestCreate_MaterializesProject(t *testing.T) {
	s := newTestStore(t)
	s.Seed()
	existing := map[string]bool{}
	for _, p := range s.List("") {
		existing[p.ID] = true
	}

	p, err := s.Create(Draft{
		ClientName: "Acme",
		FunnelType: domain.FunnelLeadGen,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StageImplementation, p.Stage)
	assert.Empty(t, p.Metrics)
	assert.NotNil(t, p.Metrics)
	assert.Len(t, p.Checklist, len(funnel.Resolve(domain.FunnelLeadGen).Tasks))
	assert.False(t, existing[p.ID], "new id collides with an existing project")
	assert.False(t, p.CreatedAt.IsZero())

	// Newest-first ordering: the new project leads the list.
	all := s.List("")
	require.NotEmpty(t, all)
	assert.Equal(t, p.ID, all[0].ID)
}

func TestCreate_RequiresClientName(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Create(Draft{ClientName: "   "})
	assert.ErrorIs(t, err, ErrClientNameRequired)
	assert.Zero(t, s.Len())
}

func TestCreate_InvalidFunnelFallsBack(t *testing.T) {
	s := newTestStore(t)
	p, err := s.Create(Draft{ClientName: "Acme", FunnelType: domain.FunnelType("Organic")})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultFunnel, p.FunnelType)
}

func TestCreate_KeepsFormChecklist(t *testing.T) {
	s := newTestStore(t)
	items := funnel.Checklist(domain.FunnelEcommerce)
	p, err := s.Create(Draft{
		ClientName: "Acme",
		FunnelType: domain.FunnelEcommerce,
		Checklist:  items,
	})
	require.NoError(t, err)
	assert.Equal(t, items, p.Checklist)
}

func TestList_FilterMatchesClientOrCompany(t *testing.T) {
	s := newTestStore(t)
	mustCreate(t, s, Draft{ClientName: "Eco Life", Company: "Acme Inc."})
	mustCreate(t, s, Draft{ClientName: "North Star", Company: "Polar Ltda."})

	assert.Len(t, s.List("ACME"), 1)
	assert.Len(t, s.List("north"), 1)
	assert.Len(t, s.List("life"), 1)
	assert.Empty(t, s.List("globex"))
}

func TestList_EmptyFilterIsIdentity(t *testing.T) {
	s := newTestStore(t)
	a := mustCreate(t, s, Draft{ClientName: "A"})
	b := mustCreate(t, s, Draft{ClientName: "B"})

	all := s.List("")
	require.Len(t, all, 2)
	assert.Equal(t, b.ID, all[0].ID)
	assert.Equal(t, a.ID, all[1].ID)
}

func TestUpdate_UnknownIDIsNoOp(t *testing.T) {
	s := newTestStore(t)
	p := mustCreate(t, s, Draft{ClientName: "Acme"})

	ghost := p
	ghost.ID = "does-not-exist"
	ghost.ClientName = "Ghost"
	s.Update(ghost)

	got, ok := s.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, "Acme", got.ClientName)
	assert.Equal(t, 1, s.Len())
}

func TestUpdate_ReplacesInPlace(t *testing.T) {
	s := newTestStore(t)
	p := mustCreate(t, s, Draft{ClientName: "Acme"})
	p.Niche = "B2B SaaS"
	s.Update(p)

	got, ok := s.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, "B2B SaaS", got.Niche)
}

func TestAdvanceStage(t *testing.T) {
	s := newTestStore(t)
	p := mustCreate(t, s, Draft{ClientName: "Acme"})

	stages := []domain.Stage{domain.StageValidation, domain.StagePreScale, domain.StageScale}
	for _, want := range stages {
		s.AdvanceStage(p.ID)
		got, _ := s.Get(p.ID)
		assert.Equal(t, want, got.Stage)
	}

	// Terminal: further advances change nothing.
	s.AdvanceStage(p.ID)
	got, _ := s.Get(p.ID)
	assert.Equal(t, domain.StageScale, got.Stage)

	// Unknown id: no panic, no change.
	s.AdvanceStage("does-not-exist")
}

func TestStats_DistinctClientsNotCompanies(t *testing.T) {
	s := newTestStore(t)
	mustCreate(t, s, Draft{ClientName: "Eco Life", Company: "Acme Inc.", MonthlyBudget: 5000})
	mustCreate(t, s, Draft{ClientName: "North Star", Company: "Acme Inc.", MonthlyBudget: 3000})
	mustCreate(t, s, Draft{ClientName: "Eco Life", Company: "Eco Life S.A.", MonthlyBudget: 2000})

	stats := s.Stats()
	assert.Equal(t, 3, stats.TotalActiveProjects)
	assert.Equal(t, 2, stats.TotalClients)
	assert.Equal(t, 10000.0, stats.TotalManagedSpend)
	assert.Equal(t, placeholderAverageROI, stats.AverageROI)
}

func TestAttachInsight_Overwrites(t *testing.T) {
	s := newTestStore(t)
	p := mustCreate(t, s, Draft{ClientName: "Acme"})

	first := domain.AIInsight{Status: domain.StatusWarning, Summary: "first"}
	s.AttachInsight(p.ID, first)
	got, _ := s.Get(p.ID)
	require.NotNil(t, got.LastInsight)
	assert.Equal(t, "first", got.LastInsight.Summary)

	second := domain.AIInsight{Status: domain.StatusHealthy, Summary: "second"}
	s.AttachInsight(p.ID, second)
	got, _ = s.Get(p.ID)
	assert.Equal(t, "second", got.LastInsight.Summary)
}

func TestAppendMetric_LatestIsLast(t *testing.T) {
	s := newTestStore(t)
	p := mustCreate(t, s, Draft{ClientName: "Acme"})

	s.AppendMetric(p.ID, domain.MetricData{Date: "01/05/2024", ROI: 2.1})
	s.AppendMetric(p.ID, domain.MetricData{Date: "01/06/2024", ROI: 2.9})

	got, _ := s.Get(p.ID)
	m, ok := got.LatestMetric()
	require.True(t, ok)
	assert.Equal(t, "01/06/2024", m.Date)
}

func TestToggleChecklistItem(t *testing.T) {
	s := newTestStore(t)
	p := mustCreate(t, s, Draft{ClientName: "Acme", FunnelType: domain.FunnelDirect})
	itemID := p.Checklist[0].ID

	s.ToggleChecklistItem(p.ID, itemID)
	got, _ := s.Get(p.ID)
	assert.True(t, got.Checklist[0].Completed)

	s.ToggleChecklistItem(p.ID, itemID)
	got, _ = s.Get(p.ID)
	assert.False(t, got.Checklist[0].Completed)

	// Unknown ids are quietly ignored.
	s.ToggleChecklistItem(p.ID, "missing")
	s.ToggleChecklistItem("missing", itemID)
}

func TestAddTimelineEvent_AssignsIDAndDefaultType(t *testing.T) {
	s := newTestStore(t)
	p := mustCreate(t, s, Draft{ClientName: "Acme"})

	s.AddTimelineEvent(p.ID, domain.TimelineEvent{Date: "10/06/2024", Title: "Kickoff"})
	got, _ := s.Get(p.ID)
	require.Len(t, got.Timeline, 1)
	assert.NotEmpty(t, got.Timeline[0].ID)
	assert.Equal(t, domain.EventMilestone, got.Timeline[0].Type)
}

func TestSeed(t *testing.T) {
	s := newTestStore(t)
	s.Seed()

	p, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, "Eco Life", p.ClientName)
	assert.Equal(t, domain.StageImplementation, p.Stage)
	require.Len(t, p.Metrics, 1)
	assert.Len(t, p.Checklist, 3)
	assert.Len(t, p.Timeline, 2)
	assert.Nil(t, p.LastInsight)
}

func mustCreate(t *testing.T, s *Store, d Draft) domain.Project {
	t.Helper()
	p, err := s.Create(d)
	require.NoError(t, err)
	return p
}
