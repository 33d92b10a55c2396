package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	dbm "apnadoctor/internal/models/db_models"
	"apnadoctor/pkg/utils"
)

var dashboardNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func sessionAt(daysAgo int, severity dbm.Severity, level dbm.TriageLevel) dbm.SymptomSession {
	s := dbm.SymptomSession{Severity: severity, SymptomsText: "headache"}
	s.CreatedAt = dashboardNow.Add(-time.Duration(daysAgo) * 24 * time.Hour).Unix()
	if level != "" {
		s.AnalysisResult = datatypes.NewJSONType(&dbm.TriageResult{TriageLevel: level})
	}
	return s
}

func TestSeverityLevel(t *testing.T) {
	tests := []struct {
		in   dbm.Severity
		want int
	}{
		{dbm.SeverityMild, 1},
		{dbm.SeverityModerate, 2},
		{dbm.SeveritySevere, 3},
		{dbm.SeverityCritical, 4},
		{"unknown", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SeverityLevel(tt.in), string(tt.in))
	}
}

func TestHealthScore(t *testing.T) {
	tests := []struct {
		name     string
		sessions []dbm.SymptomSession
		want     int
	}{
		{"no sessions", nil, 100},
		{"all mild", []dbm.SymptomSession{sessionAt(1, dbm.SeverityMild, ""), sessionAt(2, dbm.SeverityMild, "")}, 85},
		{"all critical", []dbm.SymptomSession{sessionAt(1, dbm.SeverityCritical, "")}, 40},
		{"mixed rounds", []dbm.SymptomSession{sessionAt(1, dbm.SeverityMild, ""), sessionAt(3, dbm.SeverityModerate, "")}, 78},
		{"only older than 30 days", []dbm.SymptomSession{sessionAt(31, dbm.SeverityCritical, "")}, 100},
		{
			"old sessions ignored",
			[]dbm.SymptomSession{sessionAt(2, dbm.SeverityMild, ""), sessionAt(45, dbm.SeverityCritical, "")},
			85,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HealthScore(tt.sessions, dashboardNow))
		})
	}
}

func TestTriageDistribution(t *testing.T) {
	sessions := []dbm.SymptomSession{
		sessionAt(1, dbm.SeverityMild, dbm.TriageSelfCare),
		sessionAt(2, dbm.SeverityMild, dbm.TriageSelfCare),
		sessionAt(3, dbm.SeveritySevere, dbm.TriageEmergency),
		sessionAt(4, dbm.SeverityMild, "made-up"),
		sessionAt(5, dbm.SeverityMild, ""),
	}

	dist := TriageDistribution(sessions)
	assert.Equal(t, map[string]int64{
		"emergency":    1,
		"urgent-visit": 0,
		"see-doctor":   0,
		"self-care":    2,
	}, dist)
}

func TestSeverityTrend(t *testing.T) {
	var sessions []dbm.SymptomSession
	for day := 0; day < 12; day++ {
		sev := dbm.SeverityMild
		if day == 0 {
			sev = dbm.SeverityCritical
		}
		sessions = append(sessions, sessionAt(day, sev, ""))
	}

	trend := SeverityTrend(sessions)
	require.Len(t, trend, 10)
	for i := 1; i < len(trend); i++ {
		assert.True(t, trend[i-1].Date.Before(trend[i].Date), "points are oldest first")
	}
	last := trend[len(trend)-1]
	assert.Equal(t, 4, last.SeverityLevel)
	assert.Equal(t, "critical", last.SeverityLabel)
	assert.Equal(t, dashboardNow.Unix(), last.Date.Unix())

	assert.Len(t, sessions, 12, "input is not reordered")
	assert.Equal(t, dbm.SeverityCritical, sessions[0].Severity)
}

func TestBuildDashboardReport(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		report := BuildDashboardReport(nil, 0, dashboardNow)
		assert.Nil(t, report.Summary.LastCheckup)
		assert.Equal(t, 100, report.Summary.HealthScore)
		assert.Empty(t, report.Charts.SeverityTrend)
		assert.NotNil(t, report.RecentActivity)
		assert.Len(t, report.Charts.TriageDistribution, 4)
	})

	t.Run("populated", func(t *testing.T) {
		var sessions []dbm.SymptomSession
		for day := 0; day < 7; day++ {
			sessions = append(sessions, sessionAt(day, dbm.SeverityModerate, dbm.TriageSeeDoctor))
		}

		report := BuildDashboardReport(sessions, 42, dashboardNow)
		assert.Equal(t, int64(42), report.Summary.TotalAnalyses)
		require.NotNil(t, report.Summary.LastCheckup)
		assert.Equal(t, dashboardNow.Unix(), report.Summary.LastCheckup.Unix())
		assert.Equal(t, 70, report.Summary.HealthScore)
		assert.Len(t, report.RecentActivity, 5)
		assert.Len(t, report.Charts.SeverityTrend, 7)
		assert.Equal(t, int64(7), report.Charts.TriageDistribution["see-doctor"])
	})
}

type fakeAnalyticsRepo struct {
	sessions  map[uuid.UUID][]dbm.SymptomSession
	err       error
	lastLimit int
}

func (f *fakeAnalyticsRepo) RecentSessions(_ context.Context, userID uuid.UUID, limit int) ([]dbm.SymptomSession, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions[userID], nil
}

func (f *fakeAnalyticsRepo) CountSessions(_ context.Context, userID uuid.UUID) (int64, error) {
	return int64(len(f.sessions[userID])), nil
}

func TestAnalyticsService_BuildDashboard(t *testing.T) {
	owner, other := uuid.New(), uuid.New()
	repo := &fakeAnalyticsRepo{sessions: map[uuid.UUID][]dbm.SymptomSession{
		owner: {
			sessionAt(0, dbm.SeverityModerate, dbm.TriageSeeDoctor),
			sessionAt(1, dbm.SeverityModerate, dbm.TriageSeeDoctor),
			sessionAt(2, dbm.SeverityModerate, dbm.TriageUrgentVisit),
		},
		other: {sessionAt(0, dbm.SeverityCritical, dbm.TriageEmergency)},
	}}
	svc := NewAnalyticsService(repo).(*analyticsService)
	svc.now = func() time.Time { return dashboardNow }

	report, err := svc.BuildDashboard(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, DashboardSessionCap, repo.lastLimit)
	assert.Equal(t, int64(3), report.Summary.TotalAnalyses)
	assert.Equal(t, 70, report.Summary.HealthScore)
	assert.Len(t, report.RecentActivity, 3)
	assert.Equal(t, int64(2), report.Charts.TriageDistribution["see-doctor"])
	assert.Equal(t, int64(1), report.Charts.TriageDistribution["urgent-visit"])
	assert.Zero(t, report.Charts.TriageDistribution["emergency"])

	report, err = svc.BuildDashboard(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 100, report.Summary.HealthScore)
	assert.Zero(t, report.Summary.TotalAnalyses)

	repo.err = errFake
	_, err = svc.BuildDashboard(context.Background(), owner)
	assert.ErrorIs(t, err, utils.ErrDatabaseError)
}
