package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"apnadoctor/internal/models/db_models"
	"apnadoctor/internal/models/request_models"
	resp "apnadoctor/internal/models/response_models"
	"apnadoctor/internal/repositories"
	"apnadoctor/pkg/utils"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 50
	minSymptomsLength   = 10
)

type SymptomServiceInterface interface {
	Analyze(ctx context.Context, userID uuid.UUID, request request_models.AnalyzeSymptomsRequest) (*resp.AnalyzeResponse, error)
	History(ctx context.Context, userID uuid.UUID, page, limit int) (*resp.HistoryResponse, error)
	GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*resp.SymptomSessionResponse, error)
	DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error
}

type SymptomService struct {
	repo     repositories.SymptomRepository
	analyzer TriageAnalyzer
	log      *zap.Logger
}

func NewSymptomService(repo repositories.SymptomRepository, analyzer TriageAnalyzer, log *zap.Logger) SymptomServiceInterface {
	return &SymptomService{repo: repo, analyzer: analyzer, log: log.Named("symptoms")}
}

func (s *SymptomService) Analyze(ctx context.Context, userID uuid.UUID, request request_models.AnalyzeSymptomsRequest) (*resp.AnalyzeResponse, error) {
	symptoms := strings.TrimSpace(request.SymptomsText)
	if utf8.RuneCountInString(symptoms) < minSymptomsLength {
		return nil, utils.ErrSymptomsTooShort
	}

	session := &db_models.SymptomSession{
		UserID:             userID,
		SymptomsText:       symptoms,
		Severity:           db_models.Severity(request.Severity),
		Onset:              request.Onset,
		Duration:           request.Duration,
		ExistingConditions: request.ExistingConditions,
		CurrentMedications: request.CurrentMedications,
		Allergies:          request.Allergies,
		Age:                request.Age,
		Gender:             request.Gender,
		IsPregnant:         request.IsPregnant,
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	result, err := s.analyzer.Analyze(ctx, triageInputFromSession(session))
	if err != nil {
		return nil, fmt.Errorf("analyze symptoms: %w", err)
	}

	if err := s.repo.AttachAnalysis(ctx, session.ID, result); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	s.log.Info("symptom session analyzed",
		zap.String("session_id", session.ID.String()),
		zap.String("triage", string(result.TriageLevel)),
		zap.String("source", result.Source))

	return &resp.AnalyzeResponse{SessionID: session.ID.String(), Analysis: result}, nil
}

func triageInputFromSession(s *db_models.SymptomSession) TriageInput {
	return TriageInput{
		SymptomsText:       s.SymptomsText,
		Severity:           s.Severity,
		Age:                s.Age,
		Gender:             s.Gender,
		Onset:              s.Onset,
		Duration:           s.Duration,
		ExistingConditions: s.ExistingConditions,
		CurrentMedications: s.CurrentMedications,
		Allergies:          s.Allergies,
		IsPregnant:         s.IsPregnant,
	}
}

// NormalizePaging applies history defaults: page 1, limit 10, limit capped at 50.
func NormalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return page, limit
}

func (s *SymptomService) History(ctx context.Context, userID uuid.UUID, page, limit int) (*resp.HistoryResponse, error) {
	page, limit = NormalizePaging(page, limit)

	sessions, err := s.repo.ListByUser(ctx, userID, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &resp.HistoryResponse{
		Sessions: resp.NewSymptomSessionResponses(sessions),
		Pagination: resp.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	}, nil
}

func (s *SymptomService) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*resp.SymptomSessionResponse, error) {
	session, err := s.repo.FindByIdForUser(ctx, sessionID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if session == nil {
		return nil, utils.ErrSessionNotFound
	}
	out := resp.NewSymptomSessionResponse(session)
	return &out, nil
}

func (s *SymptomService) DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	deleted, err := s.repo.DeleteForUser(ctx, sessionID, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if !deleted {
		return utils.ErrSessionNotFound
	}
	return nil
}
