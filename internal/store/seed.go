package store

import (
	"trafficpro/internal/domain"
)

// Seed loads the demo book of business. Ids are stable literals so share
// links keep working across restarts of a demo session.
func (s *Store) Seed() {
	s.projects = append([]domain.Project{
		{
			ID:            "1",
			ClientName:    "Eco Life",
			Company:       "Eco Life S.A.",
			Niche:         "Sustentabilidade",
			Goal:          "Vendas Diretas",
			Platforms:     []string{"Meta", "Google"},
			MonthlyBudget: 5000,
			TargetMetric:  "ROAS 3.0",
			Stage:         domain.StageImplementation,
			FunnelType:    domain.FunnelDirect,
			Metrics: []domain.MetricData{
				{
					Date:          "01/05/2024",
					Clicks:        1200,
					Leads:         45,
					Sales:         12,
					Spend:         1500,
					ROI:           2.8,
					CPA:           33.3,
					CPC:           1.25,
					CTR:           1.8,
					CPM:           15.0,
					CPCLink:       1.4,
					AvgDailySpend: 50,
					Frequency:     1.2,
					Reach:         25000,
					ManagerAnalysis: "Início de operação. O CTR está saudável, mas precisamos " +
						"otimizar a página de vendas para subir o ROI para 3.0.",
				},
			},
			Checklist: []domain.ChecklistItem{
				{ID: "t1", Label: "Criação de Contas", Completed: true},
				{ID: "t2", Label: "Estrutura de Campanhas"},
				{ID: "t3", Label: "Integração de APIs"},
			},
			Timeline: []domain.TimelineEvent{
				{ID: "e1", Date: "01/05/2024", Title: "Setup Inicial", Description: "Contas criadas e pixels configurados.", Type: domain.EventMilestone},
				{ID: "e2", Date: "05/05/2024", Title: "Troca de Criativos", Description: "Novos vídeos de UGC adicionados.", Type: domain.EventOptimization},
			},
			Invoices:  []domain.Invoice{},
			CreatedAt: s.now(),
		},
	}, s.projects...)
}
