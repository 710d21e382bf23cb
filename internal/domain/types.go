// Package domain holds the plain data model of the dashboard: projects,
// metric snapshots, checklists, timeline events, and AI insights. Types here
// carry no behavior beyond enum validity checks and small accessors; all
// mutation goes through the store.
package domain

import "time"

// FunnelType names a marketing-workflow template that determines the default
// checklist for a new project.
type FunnelType string

const (
	FunnelDirect      FunnelType = "Direct"
	FunnelWhatsApp    FunnelType = "WhatsApp"
	FunnelLeadGen     FunnelType = "LeadGen"
	FunnelEcommerce   FunnelType = "E-commerce"
	FunnelInfoproduct FunnelType = "Infoproduct"
)

func (f FunnelType) IsValid() bool {
	switch f {
	case FunnelDirect, FunnelWhatsApp, FunnelLeadGen, FunnelEcommerce, FunnelInfoproduct:
		return true
	default:
		return false
	}
}

// DefaultFunnel is used when a draft does not name a funnel type.
const DefaultFunnel = FunnelDirect

// AllFunnels lists funnel types in display order.
func AllFunnels() []FunnelType {
	return []FunnelType{FunnelDirect, FunnelWhatsApp, FunnelLeadGen, FunnelEcommerce, FunnelInfoproduct}
}

// EventType classifies a timeline entry.
type EventType string

const (
	EventMilestone    EventType = "milestone"
	EventOptimization EventType = "optimization"
	EventIncident     EventType = "incident"
)

func (e EventType) IsValid() bool {
	switch e {
	case EventMilestone, EventOptimization, EventIncident:
		return true
	default:
		return false
	}
}

// InsightStatus is the oracle's overall verdict on a project.
type InsightStatus string

const (
	StatusHealthy     InsightStatus = "healthy"
	StatusWarning     InsightStatus = "warning"
	StatusCritical    InsightStatus = "critical"
	StatusOpportunity InsightStatus = "opportunity"
)

func (s InsightStatus) IsValid() bool {
	switch s {
	case StatusHealthy, StatusWarning, StatusCritical, StatusOpportunity:
		return true
	default:
		return false
	}
}

// SuggestionCategory buckets an action-plan entry.
type SuggestionCategory string

const (
	CategoryBudget   SuggestionCategory = "budget"
	CategoryCreative SuggestionCategory = "creative"
	CategoryAudience SuggestionCategory = "audience"
	CategoryCopy     SuggestionCategory = "copy"
)

func (c SuggestionCategory) IsValid() bool {
	switch c {
	case CategoryBudget, CategoryCreative, CategoryAudience, CategoryCopy:
		return true
	default:
		return false
	}
}

// Impact grades how much an action-plan entry is expected to move results.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

func (i Impact) IsValid() bool {
	switch i {
	case ImpactHigh, ImpactMedium, ImpactLow:
		return true
	default:
		return false
	}
}

// MetricData is one dated advertising-performance snapshot. Date is a display
// label, not a parsed calendar value. Values may be zero; nothing beyond the
// numeric type is enforced.
type MetricData struct {
	Date          string  `json:"date"`
	Clicks        float64 `json:"clicks"`
	Leads         float64 `json:"leads"`
	Sales         float64 `json:"sales"`
	Spend         float64 `json:"spend"`
	ROI           float64 `json:"roi"`
	CPA           float64 `json:"cpa"`
	CPC           float64 `json:"cpc"`
	CTR           float64 `json:"ctr"`
	CPM           float64 `json:"cpm"`
	CPCLink       float64 `json:"cpcLink"`
	AvgDailySpend float64 `json:"avgDailySpend"`
	Frequency     float64 `json:"frequency"`
	Reach         float64 `json:"reach"`

	ScreenshotURL   string `json:"screenshotUrl,omitempty"`
	ManagerAnalysis string `json:"managerAnalysis,omitempty"`
}

// ChecklistItem is one onboarding/operations task generated from a funnel
// template at project creation.
type ChecklistItem struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	Description   string `json:"description,omitempty"`
	Completed     bool   `json:"completed"`
	EstimatedTime string `json:"estimatedTime,omitempty"`
	TargetMonth   string `json:"targetMonth,omitempty"`
}

// TimelineEvent is a dated entry on the project's strategic timeline.
// Events are rendered in sequence order; no sorting is performed.
type TimelineEvent struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        EventType `json:"type"`
}

// AISuggestion is one entry of an insight's action plan.
type AISuggestion struct {
	Category    SuggestionCategory `json:"category"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Impact      Impact             `json:"impact"`
}

// AIInsight is the structured output of the advice oracle. A project keeps at
// most one; a new insight overwrites the previous one and no history is
// retained.
type AIInsight struct {
	Status     InsightStatus  `json:"status"`
	Summary    string         `json:"summary"`
	Diagnosis  string         `json:"diagnosis"`
	Why        string         `json:"why"`
	ActionPlan []AISuggestion `json:"actionPlan"`
}

// Invoice is a placeholder for billing records. The original carried an
// untyped list here; kept as an explicit empty extension point.
type Invoice struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Issued string  `json:"issued"`
}

// Personalization is an unimplemented extension point for per-client report
// customization.
type Personalization struct {
	Theme string `json:"theme,omitempty"`
}

// Project is the aggregate root. The store owns the canonical copy; views
// receive value copies and route every mutation through a named store
// operation.
type Project struct {
	ID            string          `json:"id"`
	ClientName    string          `json:"clientName"`
	Company       string          `json:"company"`
	Niche         string          `json:"niche"`
	Goal          string          `json:"goal"`
	Platforms     []string        `json:"platforms"`
	MonthlyBudget float64         `json:"monthlyBudget"`
	TargetMetric  string          `json:"targetMetric"`
	Stage         Stage           `json:"stage"`
	FunnelType    FunnelType      `json:"funnelType"`
	Metrics       []MetricData    `json:"metrics"`
	Checklist     []ChecklistItem `json:"checklist"`
	Timeline      []TimelineEvent `json:"timeline"`
	Invoices      []Invoice       `json:"invoices"`
	Personalize   *Personalization `json:"personalization,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastInsight   *AIInsight      `json:"lastAIInsight,omitempty"`
}

// LatestMetric returns the last snapshot of the metric sequence. The sequence
// is append-only, so the last element is the most recent one.
func (p Project) LatestMetric() (MetricData, bool) {
	if len(p.Metrics) == 0 {
		return MetricData{}, false
	}
	return p.Metrics[len(p.Metrics)-1], true
}

// AllowedPlatforms is the fixed set offered at project creation. Platforms are
// not re-validated after creation.
func AllowedPlatforms() []string {
	return []string{"Meta", "Google", "TikTok", "LinkedIn", "YouTube"}
}

// DashboardStats is derived by the store and never stored.
type DashboardStats struct {
	TotalActiveProjects int     `json:"totalActiveProjects"`
	TotalClients        int     `json:"totalClients"`
	TotalManagedSpend   float64 `json:"totalManagedSpend"`
	AverageROI          float64 `json:"averageROI"`
}
