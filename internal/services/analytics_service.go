package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	dbm "apnadoctor/internal/models/db_models"
	resp "apnadoctor/internal/models/response_models"
	"apnadoctor/internal/repositories"
	"apnadoctor/pkg/utils"
)

const (
	// DashboardSessionCap bounds how many sessions feed one dashboard.
	DashboardSessionCap = 100
	severityTrendLength = 10
	recentActivityCount = 5
	healthScoreWindow   = 30 * 24 * time.Hour
)

var severityLevels = map[dbm.Severity]int{
	dbm.SeverityMild:     1,
	dbm.SeverityModerate: 2,
	dbm.SeveritySevere:   3,
	dbm.SeverityCritical: 4,
}

// SeverityLevel maps a severity to 1..4; anything unrecognised counts as 0.
func SeverityLevel(s dbm.Severity) int {
	return severityLevels[s]
}

type AnalyticsService interface {
	BuildDashboard(ctx context.Context, userID uuid.UUID) (*resp.DashboardReport, error)
}

type analyticsService struct {
	repo repositories.AnalyticsRepository
	now  func() time.Time
}

func NewAnalyticsService(repo repositories.AnalyticsRepository) AnalyticsService {
	return &analyticsService{repo: repo, now: time.Now}
}

func (s *analyticsService) BuildDashboard(ctx context.Context, userID uuid.UUID) (*resp.DashboardReport, error) {
	sessions, err := s.repo.RecentSessions(ctx, userID, DashboardSessionCap)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	total, err := s.repo.CountSessions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	return BuildDashboardReport(sessions, total, s.now()), nil
}

// BuildDashboardReport aggregates sessions, which must be ordered newest first.
func BuildDashboardReport(sessions []dbm.SymptomSession, total int64, now time.Time) *resp.DashboardReport {
	if len(sessions) > DashboardSessionCap {
		sessions = sessions[:DashboardSessionCap]
	}

	var lastCheckup *time.Time
	if len(sessions) > 0 {
		t := utils.FromUnixSeconds(sessions[0].CreatedAt)
		lastCheckup = &t
	}

	return &resp.DashboardReport{
		Summary: resp.DashboardSummary{
			TotalAnalyses: total,
			HealthScore:   HealthScore(sessions, now),
			LastCheckup:   lastCheckup,
		},
		Charts: resp.DashboardCharts{
			SeverityTrend:      SeverityTrend(sessions),
			TriageDistribution: TriageDistribution(sessions),
		},
		RecentActivity: resp.NewSymptomSessionResponses(sessions[:min(recentActivityCount, len(sessions))]),
	}
}

// TriageDistribution counts sessions per triage level; every level is present, unknown levels are dropped.
func TriageDistribution(sessions []dbm.SymptomSession) map[string]int64 {
	dist := make(map[string]int64, len(dbm.TriageLevels))
	for _, level := range dbm.TriageLevels {
		dist[string(level)] = 0
	}

	for i := range sessions {
		result := sessions[i].Analysis()
		if result == nil {
			continue
		}
		key := string(result.TriageLevel)
		if _, ok := dist[key]; ok {
			dist[key]++
		}
	}
	return dist
}

// SeverityTrend takes the newest ten sessions and returns them oldest first.
func SeverityTrend(sessions []dbm.SymptomSession) []resp.SeverityPoint {
	recent := append([]dbm.SymptomSession(nil), sessions[:min(severityTrendLength, len(sessions))]...)
	recent = lo.Reverse(recent)

	return lo.Map(recent, func(s dbm.SymptomSession, _ int) resp.SeverityPoint {
		return resp.SeverityPoint{
			Date:          utils.FromUnixSeconds(s.CreatedAt),
			SeverityLevel: SeverityLevel(s.Severity),
			SeverityLabel: string(s.Severity),
		}
	})
}

// HealthScore is 100 with no sessions in the last 30 days, else max(0, round(100 - avg*15)).
func HealthScore(sessions []dbm.SymptomSession, now time.Time) int {
	cutoff := now.Add(-healthScoreWindow).Unix()
	window := lo.Filter(sessions, func(s dbm.SymptomSession, _ int) bool {
		return s.CreatedAt >= cutoff
	})
	if len(window) == 0 {
		return 100
	}

	sum := lo.SumBy(window, func(s dbm.SymptomSession) int {
		return SeverityLevel(s.Severity)
	})
	avg := float64(sum) / float64(len(window))

	score := int(math.Round(100 - avg*15))
	return max(0, score)
}
