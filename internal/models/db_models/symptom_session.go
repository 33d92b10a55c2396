package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
	SeverityCritical Severity = "critical"
)

type TriageLevel string

const (
	TriageEmergency   TriageLevel = "emergency"
	TriageUrgentVisit TriageLevel = "urgent-visit"
	TriageSeeDoctor   TriageLevel = "see-doctor"
	TriageSelfCare    TriageLevel = "self-care"
)

// TriageLevels lists every category in display order.
var TriageLevels = []TriageLevel{TriageEmergency, TriageUrgentVisit, TriageSeeDoctor, TriageSelfCare}

type SymptomSession struct {
	BaseModel
	UserID             uuid.UUID `gorm:"type:uuid;not null;index"`
	SymptomsText       string    `gorm:"type:text;not null"`
	Severity           Severity  `gorm:"type:varchar(16);not null"`
	Onset              string    `gorm:"type:varchar(120)"`
	Duration           string    `gorm:"type:varchar(120)"`
	ExistingConditions string    `gorm:"type:text"`
	CurrentMedications string    `gorm:"type:text"`
	Allergies          string    `gorm:"type:text"`
	Age                int       `gorm:"not null"`
	Gender             string    `gorm:"type:varchar(20)"`
	IsPregnant         bool      `gorm:"default:false"`

	AnalysisResult datatypes.JSONType[*TriageResult] `gorm:"type:jsonb"`
}

// Analysis returns the attached triage result, or nil before analysis has run.
func (s *SymptomSession) Analysis() *TriageResult {
	return s.AnalysisResult.Data()
}

type TriageResult struct {
	TriageLevel        TriageLevel     `json:"triageLevel"`
	TriageReason       string          `json:"triageReason"`
	PossibleConditions []string        `json:"possibleConditions"`
	Recommendations    Recommendations `json:"recommendations"`
	FollowUpAdvice     string          `json:"followUpAdvice"`
	ConfidenceScore    float64         `json:"confidenceScore"`
	Disclaimer         string          `json:"disclaimer"`
	Source             string          `json:"source,omitempty"`
}

type Recommendations struct {
	Medicines            []Medicine         `json:"medicines"`
	HomeRemedies         []string           `json:"homeRemedies"`
	WhatToDo             []string           `json:"whatToDo"`
	WhatNotToDo          []string           `json:"whatNotToDo"`
	DietaryAdvice        []string           `json:"dietaryAdvice"`
	DoctorSpecialization string             `json:"doctorSpecialization"`
	EmergencyContacts    []EmergencyContact `json:"emergencyContacts"`
}

type Medicine struct {
	Name          string `json:"name"`
	Dose          string `json:"dose"`
	Notes         string `json:"notes"`
	EvidenceLevel string `json:"evidenceLevel"`
}

type EmergencyContact struct {
	Service     string `json:"service"`
	Number      string `json:"number"`
	Description string `json:"description"`
}
