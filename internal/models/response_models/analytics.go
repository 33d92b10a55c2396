package response_models

import "time"

type DashboardReport struct {
	Summary        DashboardSummary         `json:"summary"`
	Charts         DashboardCharts          `json:"charts"`
	RecentActivity []SymptomSessionResponse `json:"recentActivity"`
}

type DashboardSummary struct {
	TotalAnalyses int64      `json:"totalAnalyses"`
	HealthScore   int        `json:"healthScore"`
	LastCheckup   *time.Time `json:"lastCheckup"`
}

type DashboardCharts struct {
	SeverityTrend      []SeverityPoint  `json:"severityTrend"`
	TriageDistribution map[string]int64 `json:"triageDistribution"`
}

type SeverityPoint struct {
	Date          time.Time `json:"date"`
	SeverityLevel int       `json:"severityLevel"`
	SeverityLabel string    `json:"severityLabel"`
}
