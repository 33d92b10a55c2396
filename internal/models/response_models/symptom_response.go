package response_models

import (
	"time"

	"apnadoctor/internal/models/db_models"
	"apnadoctor/pkg/utils"
)

type SymptomSessionResponse struct {
	ID                 string                  `json:"id"`
	SymptomsText       string                  `json:"symptomsText"`
	Severity           string                  `json:"severity"`
	Onset              string                  `json:"onset,omitempty"`
	Duration           string                  `json:"duration,omitempty"`
	ExistingConditions string                  `json:"existingConditions,omitempty"`
	CurrentMedications string                  `json:"currentMedications,omitempty"`
	Allergies          string                  `json:"allergies,omitempty"`
	Age                int                     `json:"age"`
	Gender             string                  `json:"gender,omitempty"`
	IsPregnant         bool                    `json:"isPregnant"`
	AnalysisResult     *db_models.TriageResult `json:"analysisResult"`
	CreatedAt          time.Time               `json:"createdAt"`
}

func NewSymptomSessionResponse(s *db_models.SymptomSession) SymptomSessionResponse {
	return SymptomSessionResponse{
		ID:                 s.ID.String(),
		SymptomsText:       s.SymptomsText,
		Severity:           string(s.Severity),
		Onset:              s.Onset,
		Duration:           s.Duration,
		ExistingConditions: s.ExistingConditions,
		CurrentMedications: s.CurrentMedications,
		Allergies:          s.Allergies,
		Age:                s.Age,
		Gender:             s.Gender,
		IsPregnant:         s.IsPregnant,
		AnalysisResult:     s.Analysis(),
		CreatedAt:          utils.FromUnixSeconds(s.CreatedAt),
	}
}

func NewSymptomSessionResponses(sessions []db_models.SymptomSession) []SymptomSessionResponse {
	out := make([]SymptomSessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, NewSymptomSessionResponse(&sessions[i]))
	}
	return out
}

type AnalyzeResponse struct {
	SessionID string                  `json:"sessionId"`
	Analysis  *db_models.TriageResult `json:"analysis"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type HistoryResponse struct {
	Sessions   []SymptomSessionResponse `json:"sessions"`
	Pagination Pagination               `json:"pagination"`
}
