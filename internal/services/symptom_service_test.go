package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"apnadoctor/internal/models/db_models"
	"apnadoctor/internal/models/request_models"
	"apnadoctor/pkg/utils"
)

type listCall struct {
	offset, limit int
}

type fakeSymptomRepo struct {
	items     []db_models.SymptomSession
	createErr error
	lists     []listCall
}

func (f *fakeSymptomRepo) Create(_ context.Context, s *db_models.SymptomSession) error {
	if f.createErr != nil {
		return f.createErr
	}
	s.ID = uuid.New()
	f.items = append(f.items, *s)
	return nil
}

func (f *fakeSymptomRepo) AttachAnalysis(_ context.Context, id uuid.UUID, result *db_models.TriageResult) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].AnalysisResult = datatypes.NewJSONType(result)
			return nil
		}
	}
	return errFake
}

func (f *fakeSymptomRepo) FindByIdForUser(_ context.Context, id, userID uuid.UUID) (*db_models.SymptomSession, error) {
	for i := range f.items {
		if f.items[i].ID == id && f.items[i].UserID == userID {
			s := f.items[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeSymptomRepo) ListByUser(_ context.Context, userID uuid.UUID, offset, limit int) ([]db_models.SymptomSession, error) {
	f.lists = append(f.lists, listCall{offset, limit})
	var owned []db_models.SymptomSession
	for _, s := range f.items {
		if s.UserID == userID {
			owned = append(owned, s)
		}
	}
	if offset >= len(owned) {
		return nil, nil
	}
	return owned[offset:min(len(owned), offset+limit)], nil
}

func (f *fakeSymptomRepo) CountByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, s := range f.items {
		if s.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeSymptomRepo) DeleteForUser(_ context.Context, id, userID uuid.UUID) (bool, error) {
	for i := range f.items {
		if f.items[i].ID == id && f.items[i].UserID == userID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func newTestSymptomService(repo *fakeSymptomRepo, primary TriageAnalyzer) SymptomServiceInterface {
	analyzer := NewResilientTriageAnalyzer(primary, NewFallbackTriageAnalyzer(), zap.NewNop())
	return NewSymptomService(repo, analyzer, zap.NewNop())
}

func TestSymptomService_Analyze(t *testing.T) {
	userID := uuid.New()

	t.Run("fallback result is attached", func(t *testing.T) {
		repo := &fakeSymptomRepo{}
		svc := newTestSymptomService(repo, &stubAnalyzer{err: errFake})

		out, err := svc.Analyze(context.Background(), userID, request_models.AnalyzeSymptomsRequest{
			SymptomsText: "  sudden chest pain while walking  ",
			Severity:     "mild",
			Age:          52,
		})
		require.NoError(t, err)
		require.Len(t, repo.items, 1)

		stored := repo.items[0]
		assert.Equal(t, stored.ID.String(), out.SessionID)
		assert.Equal(t, userID, stored.UserID)
		assert.Equal(t, "sudden chest pain while walking", stored.SymptomsText)
		require.NotNil(t, stored.Analysis())
		assert.Equal(t, db_models.TriageEmergency, stored.Analysis().TriageLevel)
		assert.Equal(t, TriageSourceFallback, out.Analysis.Source)
		assert.Equal(t, out.Analysis, stored.Analysis())
	})

	t.Run("remote result is attached", func(t *testing.T) {
		repo := &fakeSymptomRepo{}
		remote := &db_models.TriageResult{TriageLevel: db_models.TriageSelfCare, Source: TriageSourceAI}
		svc := newTestSymptomService(repo, &stubAnalyzer{result: remote})

		out, err := svc.Analyze(context.Background(), userID, request_models.AnalyzeSymptomsRequest{
			SymptomsText: "runny nose for two days",
			Severity:     "mild",
			Age:          30,
		})
		require.NoError(t, err)
		assert.Equal(t, TriageSourceAI, out.Analysis.Source)
		assert.Equal(t, db_models.TriageSelfCare, repo.items[0].Analysis().TriageLevel)
	})

	t.Run("padded text shorter than the minimum is rejected", func(t *testing.T) {
		repo := &fakeSymptomRepo{}
		svc := newTestSymptomService(repo, nil)

		_, err := svc.Analyze(context.Background(), userID, request_models.AnalyzeSymptomsRequest{
			SymptomsText: "         x",
			Severity:     "mild",
			Age:          30,
		})
		assert.ErrorIs(t, err, utils.ErrSymptomsTooShort)
		assert.Empty(t, repo.items)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc := newTestSymptomService(&fakeSymptomRepo{createErr: errFake}, nil)

		_, err := svc.Analyze(context.Background(), userID, request_models.AnalyzeSymptomsRequest{
			SymptomsText: "headache for three days",
			Severity:     "moderate",
			Age:          30,
		})
		assert.ErrorIs(t, err, utils.ErrDatabaseError)
	})
}

func TestNormalizePaging(t *testing.T) {
	tests := []struct {
		name                string
		page, limit         int
		wantPage, wantLimit int
	}{
		{"defaults", 0, 0, 1, 10},
		{"negative", -3, -1, 1, 10},
		{"kept", 3, 20, 3, 20},
		{"limit capped", 1, 500, 1, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := NormalizePaging(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestSymptomService_History(t *testing.T) {
	userID := uuid.New()
	repo := &fakeSymptomRepo{}
	for i := 0; i < 11; i++ {
		repo.items = append(repo.items, db_models.SymptomSession{
			BaseModel:    db_models.BaseModel{ID: uuid.New()},
			UserID:       userID,
			SymptomsText: fmt.Sprintf("session %d", i),
			Severity:     db_models.SeverityMild,
		})
	}
	repo.items = append(repo.items, db_models.SymptomSession{BaseModel: db_models.BaseModel{ID: uuid.New()}, UserID: uuid.New()})
	svc := newTestSymptomService(repo, nil)

	t.Run("defaults", func(t *testing.T) {
		out, err := svc.History(context.Background(), userID, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, out.Pagination.Page)
		assert.Equal(t, 10, out.Pagination.Limit)
		assert.Equal(t, int64(11), out.Pagination.Total)
		assert.Equal(t, 2, out.Pagination.Pages)
		assert.Len(t, out.Sessions, 10)
	})

	t.Run("second page", func(t *testing.T) {
		out, err := svc.History(context.Background(), userID, 2, 10)
		require.NoError(t, err)
		assert.Equal(t, 2, out.Pagination.Pages)
		require.Len(t, out.Sessions, 1)
		assert.Equal(t, "session 10", out.Sessions[0].SymptomsText)
	})

	t.Run("limit capped", func(t *testing.T) {
		out, err := svc.History(context.Background(), userID, 1, 500)
		require.NoError(t, err)
		assert.Equal(t, 50, out.Pagination.Limit)
		assert.Equal(t, 1, out.Pagination.Pages)
		assert.Equal(t, listCall{offset: 0, limit: 50}, repo.lists[len(repo.lists)-1])
	})

	t.Run("no sessions", func(t *testing.T) {
		out, err := svc.History(context.Background(), uuid.New(), 1, 10)
		require.NoError(t, err)
		assert.Zero(t, out.Pagination.Pages)
		assert.Empty(t, out.Sessions)
	})
}

func TestSymptomService_SessionOwnership(t *testing.T) {
	owner, stranger := uuid.New(), uuid.New()
	repo := &fakeSymptomRepo{}
	svc := newTestSymptomService(repo, nil)

	created, err := svc.Analyze(context.Background(), owner, request_models.AnalyzeSymptomsRequest{
		SymptomsText: "itchy rash on both arms",
		Severity:     "mild",
		Age:          25,
	})
	require.NoError(t, err)
	sessionID := uuid.MustParse(created.SessionID)

	_, err = svc.GetSession(context.Background(), stranger, sessionID)
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)
	assert.ErrorIs(t, svc.DeleteSession(context.Background(), stranger, sessionID), utils.ErrSessionNotFound)

	got, err := svc.GetSession(context.Background(), owner, sessionID)
	require.NoError(t, err)
	assert.Equal(t, created.SessionID, got.ID)

	require.NoError(t, svc.DeleteSession(context.Background(), owner, sessionID))
	_, err = svc.GetSession(context.Background(), owner, sessionID)
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)
	assert.ErrorIs(t, svc.DeleteSession(context.Background(), owner, sessionID), utils.ErrSessionNotFound)
}
