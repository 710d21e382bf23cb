package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"trafficpro/internal/domain"
)

// adviceMsg carries the outcome of a StrategicAdvice call back to the UI
// goroutine. Exactly one of insight/err is meaningful.
type adviceMsg struct {
	projectID string
	insight   domain.AIInsight
	err       error
}

// metricsMsg carries the outcome of a screenshot analysis.
type metricsMsg struct {
	projectID string
	metric    domain.MetricData
	err       error
}

// adviceCmd fires the oracle call off the UI goroutine. The store is not
// touched here; the result is merged in Update.
func (m Model) adviceCmd(p domain.Project) tea.Cmd {
	adv, ctx := m.adv, m.ctx
	return func() tea.Msg {
		insight, err := adv.StrategicAdvice(ctx, p)
		return adviceMsg{projectID: p.ID, insight: insight, err: err}
	}
}

// analyzeCmd reads the screenshot and runs metric extraction.
func (m Model) analyzeCmd(projectID, path string) tea.Cmd {
	adv, ctx := m.adv, m.ctx
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return metricsMsg{projectID: projectID, err: fmt.Errorf("failed to read screenshot: %w", err)}
		}
		metric, err := adv.ExtractMetrics(ctx, data, mimeForPath(path))
		return metricsMsg{projectID: projectID, metric: metric, err: err}
	}
}

// applyAdvice merges a finished advice call. On failure the project's
// existing insight stays exactly as it was; only a notice is surfaced.
func (m Model) applyAdvice(msg adviceMsg) (tea.Model, tea.Cmd) {
	m.detail.advicePending = false
	if msg.err != nil {
		m.notice = "Erro ao consultar a Gemini."
		m.log.Warn("advice call failed", zap.Error(msg.err))
		return m, nil
	}
	m.store.AttachInsight(msg.projectID, msg.insight)
	m.detail.tab = tabAssistant
	m.notice = ""
	return m, nil
}

// applyMetrics merges a finished screenshot analysis, stamping the snapshot
// with today's date label.
func (m Model) applyMetrics(msg metricsMsg) (tea.Model, tea.Cmd) {
	m.detail.analyzePending = false
	if msg.err != nil {
		m.notice = "Falha ao analisar o screenshot."
		m.log.Warn("screenshot analysis failed", zap.Error(msg.err))
		return m, nil
	}
	metric := msg.metric
	metric.Date = time.Now().Format("02/01/2006")
	m.store.AppendMetric(msg.projectID, metric)
	m.notice = "Métricas extraídas e adicionadas ao relatório."
	return m, nil
}

func mimeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
