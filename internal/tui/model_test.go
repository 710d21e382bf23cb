package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"trafficpro/internal/domain"
	"trafficpro/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubAdvisor struct {
	insight domain.AIInsight
	metric  domain.MetricData
	err     error
	calls   int
}

func (a *stubAdvisor) StrategicAdvice(_ context.Context, _ domain.Project) (domain.AIInsight, error) {
	a.calls++
	return a.insight, a.err
}

func (a *stubAdvisor) ExtractMetrics(_ context.Context, _ []byte, _ string) (domain.MetricData, error) {
	a.calls++
	return a.metric, a.err
}

func newTestModel(t *testing.T, adv Advisor) (Model, *store.Store) {
	t.Helper()
	s := store.New(zap.NewNop())
	s.Seed()
	m := New(context.Background(), Deps{Store: s, Advisor: adv, ShareOrigin: "https://example.test"})
	return m, s
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestApplyAdvice_FailureLeavesInsightUntouched(t *testing.T) {
	m, s := newTestModel(t, &stubAdvisor{err: errors.New("quota exceeded")})

	prior := domain.AIInsight{Status: domain.StatusHealthy, Summary: "antes"}
	s.AttachInsight("1", prior)

	m = m.openDetail("1")
	m.detail.advicePending = true

	next, _ := m.applyAdvice(adviceMsg{projectID: "1", err: errors.New("quota exceeded")})
	m = next.(Model)

	p, ok := s.Get("1")
	require.True(t, ok)
	require.NotNil(t, p.LastInsight)
	assert.Equal(t, prior, *p.LastInsight)
	assert.False(t, m.detail.advicePending)
	assert.NotEmpty(t, m.notice)
}

func TestApplyAdvice_FailureKeepsNilInsightNil(t *testing.T) {
	m, s := newTestModel(t, nil)
	p, err := s.Create(store.Draft{ClientName: "Nova"})
	require.NoError(t, err)
	require.Nil(t, p.LastInsight)

	m = m.openDetail(p.ID)
	next, _ := m.applyAdvice(adviceMsg{projectID: p.ID, err: errors.New("boom")})
	m = next.(Model)

	got, ok := s.Get(p.ID)
	require.True(t, ok)
	assert.Nil(t, got.LastInsight)
	assert.NotEmpty(t, m.notice)
}

func TestApplyAdvice_SuccessOverwritesAndShowsAssistant(t *testing.T) {
	m, s := newTestModel(t, nil)
	s.AttachInsight("1", domain.AIInsight{Status: domain.StatusCritical, Summary: "velho"})

	m = m.openDetail("1")
	fresh := domain.AIInsight{Status: domain.StatusOpportunity, Summary: "novo"}
	next, _ := m.applyAdvice(adviceMsg{projectID: "1", insight: fresh})
	m = next.(Model)

	p, _ := s.Get("1")
	require.NotNil(t, p.LastInsight)
	assert.Equal(t, fresh, *p.LastInsight)
	assert.Equal(t, tabAssistant, m.detail.tab)
}

func TestAdviceKey_DisabledWhilePending(t *testing.T) {
	adv := &stubAdvisor{}
	m, _ := newTestModel(t, adv)
	m = m.openDetail("1")
	m.detail.advicePending = true

	_, cmd := m.updateDetail(key("g"))
	assert.Nil(t, cmd, "a second advice call must not fire while one is in flight")
}

func TestAdviceKey_DisabledWithoutAdvisor(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = m.openDetail("1")

	next, cmd := m.updateDetail(key("g"))
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.False(t, m.detail.advicePending)
}

func TestApplyMetrics_AppendsStampedSnapshot(t *testing.T) {
	m, s := newTestModel(t, nil)
	before, _ := s.Get("1")
	n := len(before.Metrics)

	m = m.openDetail("1")
	next, _ := m.applyMetrics(metricsMsg{projectID: "1", metric: domain.MetricData{Sales: 7}})
	_ = next.(Model)

	p, _ := s.Get("1")
	require.Len(t, p.Metrics, n+1)
	latest, ok := p.LatestMetric()
	require.True(t, ok)
	assert.Equal(t, float64(7), latest.Sales)
	assert.NotEmpty(t, latest.Date)
}

func TestClientView_UnknownProjectShowsNotFound(t *testing.T) {
	s := store.New(zap.NewNop())
	s.Seed()
	m := NewClientView(context.Background(), Deps{Store: s}, "nope")

	assert.Equal(t, modeNotFound, m.mode)
	assert.Contains(t, m.View(), "Projeto não encontrado")
}

func TestClientView_IsReadOnly(t *testing.T) {
	s := store.New(zap.NewNop())
	s.Seed()
	m := NewClientView(context.Background(), Deps{Store: s, Advisor: &stubAdvisor{}}, "1")
	require.Equal(t, modeClient, m.mode)

	before, _ := s.Get("1")

	// Mutation keys from the manager view do nothing behind a share link.
	for _, k := range []string{"g", "m", "u", "t", "s", " ", "n"} {
		next, cmd := m.Update(key(k))
		m = next.(Model)
		assert.Nil(t, cmd, "key %q must be inert in client view", k)
	}

	after, _ := s.Get("1")
	assert.Equal(t, before.Stage, after.Stage)
	assert.Equal(t, before.Checklist, after.Checklist)
	assert.Equal(t, len(before.Metrics), len(after.Metrics))
}

func TestClientView_TabsExcludeAssistant(t *testing.T) {
	s := store.New(zap.NewNop())
	s.Seed()
	m := NewClientView(context.Background(), Deps{Store: s}, "1")

	seen := map[detailTab]bool{m.detail.tab: true}
	for i := 0; i < 4; i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(Model)
		seen[m.detail.tab] = true
	}
	assert.False(t, seen[tabAssistant], "client tab cycle must never reach the assistant")
	assert.True(t, seen[tabReports])
	assert.True(t, seen[tabTimeline])
}

func TestFunnelReselection_ReplacesPendingChecklist(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.screen = screenForm
	m.form = newFormState()
	m.form.focus = fieldFunnel

	first := m.form.checklist
	require.NotEmpty(t, first)

	next, _ := m.updateForm(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(Model)

	second := m.form.checklist
	require.NotEmpty(t, second)
	for _, a := range first {
		for _, b := range second {
			assert.NotEqual(t, a.ID, b.ID, "checklist items must be regenerated, not merged")
		}
	}
}

func TestBoard_AdvanceStageFromKeyboard(t *testing.T) {
	m, s := newTestModel(t, nil)

	p, _ := s.Get("1")
	require.Equal(t, domain.StageImplementation, p.Stage)

	// Column 0 (Implementation) holds the seed project.
	next, _ := m.updateBoard(key("m"))
	_ = next.(Model)

	p, _ = s.Get("1")
	assert.Equal(t, domain.StageValidation, p.Stage)
}

func TestDetail_TimelineEventKey(t *testing.T) {
	m, s := newTestModel(t, nil)
	m = m.openDetail("1")

	before, _ := s.Get("1")

	next, _ := m.updateDetail(key("t"))
	m = next.(Model)
	require.Equal(t, inputEvent, m.detail.entering)

	m.detail.input.SetValue("Reunião de alinhamento")
	next, _ = m.updateDetail(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	after, _ := s.Get("1")
	require.Len(t, after.Timeline, len(before.Timeline)+1)
	assert.Equal(t, "Reunião de alinhamento", after.Timeline[len(after.Timeline)-1].Title)
}
