package store

import "trafficpro/internal/domain"

// placeholderAverageROI stands in for a real computation over metric history.
// The original shipped this as a constant; flagged as an open question rather
// than silently "fixed" here.
const placeholderAverageROI = 3.4

// Stats derives the dashboard summary from the current project list.
// TotalManagedSpend sums planned monthly budgets, not recorded spend, matching
// the original (the naming mismatch is documented in DESIGN.md).
func (s *Store) Stats() domain.DashboardStats {
	clients := make(map[string]struct{}, len(s.projects))
	var budget float64
	for _, p := range s.projects {
		clients[p.ClientName] = struct{}{}
		budget += p.MonthlyBudget
	}
	return domain.DashboardStats{
		TotalActiveProjects: len(s.projects),
		TotalClients:        len(clients),
		TotalManagedSpend:   budget,
		AverageROI:          placeholderAverageROI,
	}
}
