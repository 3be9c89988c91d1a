package models

// DashboardSummary aggregates flock counters for the landing screen.
type DashboardSummary struct {
	TotalSheep         int           `json:"total_sheep"`
	ActiveSheep        int           `json:"active_sheep"`
	OverdueHealth      int           `json:"overdue_health_events"`
	UpcomingTasks      int           `json:"upcoming_tasks"`
	ActiveMatingPairs  int           `json:"active_mating_pairs"`
	RecentHealthEvents []HealthEvent `json:"recent_health_events"`
}
