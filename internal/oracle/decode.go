package oracle

import (
	"bytes"
	"encoding/json"
	"fmt"

	"trafficpro/internal/domain"
)

// The oracle declares an output schema, but the schema is a request, not a
// guarantee. Decoding here is deliberately strict: unknown fields, missing
// required fields, wrong types, or out-of-enum values all reject the whole
// response. The data is shown to end clients, so permissive decoding is not
// an option.

type metricsPayload struct {
	Clicks        *float64 `json:"clicks"`
	Leads         *float64 `json:"leads"`
	Sales         *float64 `json:"sales"`
	Spend         *float64 `json:"spend"`
	CPC           *float64 `json:"cpc"`
	CPA           *float64 `json:"cpa"`
	ROI           *float64 `json:"roi"`
	CTR           *float64 `json:"ctr"`
	CPM           *float64 `json:"cpm"`
	CPCLink       *float64 `json:"cpcLink"`
	AvgDailySpend *float64 `json:"avgDailySpend"`
	Frequency     *float64 `json:"frequency"`
	Reach         *float64 `json:"reach"`
}

// DecodeMetrics strictly decodes a metrics-extraction response. Every numeric
// field is required.
func DecodeMetrics(raw []byte) (domain.MetricData, error) {
	var payload metricsPayload
	if err := strictUnmarshal(raw, &payload); err != nil {
		return domain.MetricData{}, err
	}

	required := map[string]*float64{
		"clicks":        payload.Clicks,
		"leads":         payload.Leads,
		"sales":         payload.Sales,
		"spend":         payload.Spend,
		"cpc":           payload.CPC,
		"cpa":           payload.CPA,
		"roi":           payload.ROI,
		"ctr":           payload.CTR,
		"cpm":           payload.CPM,
		"cpcLink":       payload.CPCLink,
		"avgDailySpend": payload.AvgDailySpend,
		"frequency":     payload.Frequency,
		"reach":         payload.Reach,
	}
	for _, f := range metricFields {
		if required[f] == nil {
			return domain.MetricData{}, fmt.Errorf("%w: missing field %q", ErrInvalidResponse, f)
		}
	}

	return domain.MetricData{
		Clicks:        *payload.Clicks,
		Leads:         *payload.Leads,
		Sales:         *payload.Sales,
		Spend:         *payload.Spend,
		CPC:           *payload.CPC,
		CPA:           *payload.CPA,
		ROI:           *payload.ROI,
		CTR:           *payload.CTR,
		CPM:           *payload.CPM,
		CPCLink:       *payload.CPCLink,
		AvgDailySpend: *payload.AvgDailySpend,
		Frequency:     *payload.Frequency,
		Reach:         *payload.Reach,
	}, nil
}

type insightPayload struct {
	Status     *string             `json:"status"`
	Summary    *string             `json:"summary"`
	Diagnosis  *string             `json:"diagnosis"`
	Why        *string             `json:"why"`
	ActionPlan []suggestionPayload `json:"actionPlan"`
}

type suggestionPayload struct {
	Category    *string `json:"category"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Impact      *string `json:"impact"`
}

// DecodeInsight strictly decodes a strategic-advice response. All fields are
// required and the three enums must carry known members.
func DecodeInsight(raw []byte) (domain.AIInsight, error) {
	var payload insightPayload
	if err := strictUnmarshal(raw, &payload); err != nil {
		return domain.AIInsight{}, err
	}

	switch {
	case payload.Status == nil:
		return domain.AIInsight{}, fmt.Errorf("%w: missing field %q", ErrInvalidResponse, "status")
	case payload.Summary == nil:
		return domain.AIInsight{}, fmt.Errorf("%w: missing field %q", ErrInvalidResponse, "summary")
	case payload.Diagnosis == nil:
		return domain.AIInsight{}, fmt.Errorf("%w: missing field %q", ErrInvalidResponse, "diagnosis")
	case payload.Why == nil:
		return domain.AIInsight{}, fmt.Errorf("%w: missing field %q", ErrInvalidResponse, "why")
	case payload.ActionPlan == nil:
		return domain.AIInsight{}, fmt.Errorf("%w: missing field %q", ErrInvalidResponse, "actionPlan")
	}

	status := domain.InsightStatus(*payload.Status)
	if !status.IsValid() {
		return domain.AIInsight{}, fmt.Errorf("%w: unknown status %q", ErrInvalidResponse, *payload.Status)
	}

	plan := make([]domain.AISuggestion, 0, len(payload.ActionPlan))
	for i, s := range payload.ActionPlan {
		switch {
		case s.Category == nil:
			return domain.AIInsight{}, fmt.Errorf("%w: actionPlan[%d] missing category", ErrInvalidResponse, i)
		case s.Title == nil:
			return domain.AIInsight{}, fmt.Errorf("%w: actionPlan[%d] missing title", ErrInvalidResponse, i)
		case s.Description == nil:
			return domain.AIInsight{}, fmt.Errorf("%w: actionPlan[%d] missing description", ErrInvalidResponse, i)
		case s.Impact == nil:
			return domain.AIInsight{}, fmt.Errorf("%w: actionPlan[%d] missing impact", ErrInvalidResponse, i)
		}

		category := domain.SuggestionCategory(*s.Category)
		if !category.IsValid() {
			return domain.AIInsight{}, fmt.Errorf("%w: actionPlan[%d] unknown category %q", ErrInvalidResponse, i, *s.Category)
		}
		impact := domain.Impact(*s.Impact)
		if !impact.IsValid() {
			return domain.AIInsight{}, fmt.Errorf("%w: actionPlan[%d] unknown impact %q", ErrInvalidResponse, i, *s.Impact)
		}

		plan = append(plan, domain.AISuggestion{
			Category:    category,
			Title:       *s.Title,
			Description: *s.Description,
			Impact:      impact,
		})
	}

	return domain.AIInsight{
		Status:     status,
		Summary:    *payload.Summary,
		Diagnosis:  *payload.Diagnosis,
		Why:        *payload.Why,
		ActionPlan: plan,
	}, nil
}

func strictUnmarshal(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	// A trailing second JSON value is as malformed as a bad first one.
	if dec.More() {
		return fmt.Errorf("%w: trailing data after JSON object", ErrInvalidResponse)
	}
	return nil
}
