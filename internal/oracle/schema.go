package oracle

import (
	"google.golang.org/genai"

	"trafficpro/internal/domain"
)

const metricsPrompt = "Extract key advertising metrics from this screenshot. " +
	"Return a JSON object with: clicks, leads, sales, spend, cpc, cpa, roi, ctr, " +
	"cpm, cpcLink, avgDailySpend, frequency, and reach."

const adviceTemplate = `Atue como um Especialista Sênior de Marketing de Performance e Growth.
Analise o projeto: %s (%s).
Meta do cliente: %s.
Métricas atuais: %s.
Funil: %s.
Gere um diagnóstico crítico e um plano de ação prático para melhorar o ROI e escalar os resultados.`

// metricFields are the numeric fields the extraction schema requires, in
// declaration order.
var metricFields = []string{
	"clicks", "leads", "sales", "spend", "cpc", "cpa", "roi",
	"ctr", "cpm", "cpcLink", "avgDailySpend", "frequency", "reach",
}

// metricsSchema constrains the extraction response to an object with every
// metric field present and numeric.
func metricsSchema() *genai.Schema {
	props := make(map[string]*genai.Schema, len(metricFields))
	for _, f := range metricFields {
		props[f] = &genai.Schema{Type: genai.TypeNumber}
	}
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: props,
		Required:   append([]string(nil), metricFields...),
	}
}

// adviceSchema constrains the strategic-advice response to the insight shape:
// status enum, free-text summary/diagnosis/why, and an ordered action plan
// with category and impact enums.
func adviceSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"status": {
				Type: genai.TypeString,
				Enum: []string{
					string(domain.StatusHealthy),
					string(domain.StatusWarning),
					string(domain.StatusCritical),
					string(domain.StatusOpportunity),
				},
			},
			"summary":   {Type: genai.TypeString},
			"diagnosis": {Type: genai.TypeString},
			"why":       {Type: genai.TypeString},
			"actionPlan": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"category": {
							Type: genai.TypeString,
							Enum: []string{
								string(domain.CategoryBudget),
								string(domain.CategoryCreative),
								string(domain.CategoryAudience),
								string(domain.CategoryCopy),
							},
						},
						"title":       {Type: genai.TypeString},
						"description": {Type: genai.TypeString},
						"impact": {
							Type: genai.TypeString,
							Enum: []string{
								string(domain.ImpactHigh),
								string(domain.ImpactMedium),
								string(domain.ImpactLow),
							},
						},
					},
					Required: []string{"category", "title", "description", "impact"},
				},
			},
		},
		Required: []string{"status", "summary", "diagnosis", "why", "actionPlan"},
	}
}
