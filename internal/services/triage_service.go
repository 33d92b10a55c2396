package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"apnadoctor/internal/models/db_models"
	"apnadoctor/pkg/utils"
)

const (
	TriageSourceAI       = "ai"
	TriageSourceFallback = "fallback"

	standardDisclaimer = "This is an educational tool only and not medical advice. Always consult healthcare professionals for proper diagnosis and treatment."
)

// TriageInput is the patient-reported data a triage decision is made from.
type TriageInput struct {
	SymptomsText       string
	Severity           db_models.Severity
	Age                int
	Gender             string
	Onset              string
	Duration           string
	ExistingConditions string
	CurrentMedications string
	Allergies          string
	IsPregnant         bool
}

type TriageAnalyzer interface {
	Analyze(ctx context.Context, in TriageInput) (*db_models.TriageResult, error)
}

// ---------- Remote (LLM) ----------

type remoteTriageAnalyzer struct {
	llm utils.LLMClientInterface
}

func NewRemoteTriageAnalyzer(llm utils.LLMClientInterface) TriageAnalyzer {
	return &remoteTriageAnalyzer{llm: llm}
}

const triageSystemPrompt = "You are a helpful medical triage assistant. Always respond with valid JSON only, no markdown formatting or code blocks. Provide accurate, helpful health guidance based on symptoms described."

func (r *remoteTriageAnalyzer) Analyze(ctx context.Context, in TriageInput) (*db_models.TriageResult, error) {
	reply, err := r.llm.Complete(ctx, utils.LLMRequest{
		System:      triageSystemPrompt,
		Messages:    []utils.LLMMessage{{Role: utils.LLMRoleUser, Content: buildTriagePrompt(in)}},
		Temperature: 0.3,
		MaxTokens:   2048,
	})
	if err != nil {
		return nil, err
	}

	var result db_models.TriageResult
	if err := utils.DecodeJSONObject(reply, &result); err != nil {
		return nil, fmt.Errorf("parse triage reply: %w", err)
	}
	if !isKnownTriageLevel(result.TriageLevel) {
		return nil, fmt.Errorf("parse triage reply: unknown triage level %q", result.TriageLevel)
	}

	result.ConfidenceScore = clamp01(result.ConfidenceScore)
	if result.Disclaimer == "" {
		result.Disclaimer = standardDisclaimer
	}
	result.Source = TriageSourceAI
	return &result, nil
}

func buildTriagePrompt(in TriageInput) string {
	var b strings.Builder
	b.WriteString("You are a medical triage assistant for an educational demonstration tool. Analyze the following symptoms and provide structured health guidance.\n\n")
	b.WriteString("SYMPTOM INFORMATION:\n")
	fmt.Fprintf(&b, "- Primary Symptoms: %s\n", in.SymptomsText)
	fmt.Fprintf(&b, "- Severity Level: %s\n", in.Severity)
	fmt.Fprintf(&b, "- Patient Age: %d\n", in.Age)
	gender := in.Gender
	if gender == "" {
		gender = "Not specified"
	}
	fmt.Fprintf(&b, "- Gender: %s\n", gender)
	optional := []struct{ label, value string }{
		{"Symptom Onset", in.Onset},
		{"Duration", in.Duration},
		{"Existing Conditions", in.ExistingConditions},
		{"Current Medications", in.CurrentMedications},
		{"Allergies", in.Allergies},
	}
	for _, o := range optional {
		if o.value != "" {
			fmt.Fprintf(&b, "- %s: %s\n", o.label, o.value)
		}
	}
	if in.IsPregnant {
		b.WriteString("- Patient is pregnant or might be pregnant\n")
	}

	b.WriteString(`
SAFETY RULES:
1. Chest pain, severe difficulty breathing, uncontrolled bleeding, sudden numbness, confusion or loss of consciousness: return "emergency".
2. For ages under 2 or over 65, escalate the triage level.
3. For pregnant patients, escalate at least one level and avoid medications contraindicated in pregnancy.
4. Only suggest OTC medications. Never prescribe.
5. When unsure, escalate.

Respond ONLY with a JSON object of this shape:
{
  "triageLevel": "emergency" | "urgent-visit" | "see-doctor" | "self-care",
  "triageReason": "string",
  "possibleConditions": ["string"],
  "recommendations": {
    "medicines": [{"name": "string", "dose": "string", "notes": "string", "evidenceLevel": "Strong|Moderate|Supportive"}],
    "homeRemedies": ["string"],
    "whatToDo": ["string"],
    "whatNotToDo": ["string"],
    "dietaryAdvice": ["string"],
    "doctorSpecialization": "string",
    "emergencyContacts": [{"service": "string", "number": "string", "description": "string"}]
  },
  "followUpAdvice": "string",
  "confidenceScore": 0.0,
  "disclaimer": "string"
}`)
	return b.String()
}

func isKnownTriageLevel(level db_models.TriageLevel) bool {
	for _, l := range db_models.TriageLevels {
		if l == level {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// ---------- Static fallback ----------

var redFlagPattern = regexp.MustCompile(`(?i)chest pain|difficulty breathing|unconscious|severe bleeding|stroke|heart attack`)

type fallbackTriageAnalyzer struct{}

func NewFallbackTriageAnalyzer() TriageAnalyzer {
	return fallbackTriageAnalyzer{}
}

// Analyze never fails: it escalates to emergency on critical severity or a red-flag phrase.
func (fallbackTriageAnalyzer) Analyze(_ context.Context, in TriageInput) (*db_models.TriageResult, error) {
	if in.Severity == db_models.SeverityCritical || redFlagPattern.MatchString(in.SymptomsText) {
		return emergencyFallback(), nil
	}
	return seeDoctorFallback(), nil
}

func emergencyFallback() *db_models.TriageResult {
	return &db_models.TriageResult{
		TriageLevel:        db_models.TriageEmergency,
		TriageReason:       "Based on the symptoms described, immediate medical attention is recommended.",
		PossibleConditions: []string{"Requires immediate medical evaluation"},
		Recommendations: db_models.Recommendations{
			Medicines:    []db_models.Medicine{},
			HomeRemedies: []string{},
			WhatToDo: []string{
				"Call emergency services immediately (112 in India)",
				"Stay calm and do not panic",
				"Have someone stay with you",
				"Keep airways clear",
			},
			WhatNotToDo: []string{
				"Do not drive yourself to the hospital",
				"Do not delay seeking help",
				"Do not take any medication without medical supervision",
			},
			DietaryAdvice:        []string{},
			DoctorSpecialization: "Emergency Medicine",
			EmergencyContacts: []db_models.EmergencyContact{
				{Service: "Emergency", Number: "112", Description: "India Emergency Number"},
				{Service: "Ambulance", Number: "102", Description: "National Ambulance Service"},
				{Service: "AIIMS Emergency", Number: "011-26588500", Description: "AIIMS Hospital Delhi"},
			},
		},
		FollowUpAdvice:  "Seek immediate emergency medical care. Do not wait.",
		ConfidenceScore: 0.7,
		Disclaimer:      "This is an educational tool only and not medical advice. Please seek immediate medical attention.",
		Source:          TriageSourceFallback,
	}
}

func seeDoctorFallback() *db_models.TriageResult {
	return &db_models.TriageResult{
		TriageLevel:        db_models.TriageSeeDoctor,
		TriageReason:       "Based on the symptoms provided, we recommend consulting a healthcare professional for proper evaluation. The AI service is temporarily unavailable.",
		PossibleConditions: []string{"Requires professional medical evaluation"},
		Recommendations: db_models.Recommendations{
			Medicines: []db_models.Medicine{},
			HomeRemedies: []string{
				"Rest adequately",
				"Stay hydrated with water and clear fluids",
				"Monitor your symptoms closely",
			},
			WhatToDo: []string{
				"Schedule an appointment with a doctor within 24-48 hours",
				"Keep track of your symptoms in a diary",
				"Note any changes or new symptoms",
				"Take your temperature if you have fever",
			},
			WhatNotToDo: []string{
				"Do not self-medicate without professional advice",
				"Do not ignore worsening symptoms",
				"Do not delay if symptoms worsen",
			},
			DietaryAdvice: []string{
				"Eat light, easily digestible foods",
				"Avoid spicy and oily foods",
				"Stay hydrated",
			},
			DoctorSpecialization: "General Physician",
			EmergencyContacts: []db_models.EmergencyContact{
				{Service: "Emergency", Number: "112", Description: "India Emergency Number"},
			},
		},
		FollowUpAdvice:  "If symptoms worsen or new symptoms appear, seek medical attention immediately.",
		ConfidenceScore: 0.5,
		Disclaimer:      "This is an educational tool only and not medical advice. Always consult healthcare professionals. AI service was unavailable, showing default guidance.",
		Source:          TriageSourceFallback,
	}
}

// ---------- Strategy ----------

type resilientTriageAnalyzer struct {
	primary  TriageAnalyzer
	fallback TriageAnalyzer
	log      *zap.Logger
}

// NewResilientTriageAnalyzer tries primary and answers from fallback on any error.
// A nil primary means no provider is configured.
func NewResilientTriageAnalyzer(primary, fallback TriageAnalyzer, log *zap.Logger) TriageAnalyzer {
	return &resilientTriageAnalyzer{primary: primary, fallback: fallback, log: log.Named("triage")}
}

func (r *resilientTriageAnalyzer) Analyze(ctx context.Context, in TriageInput) (*db_models.TriageResult, error) {
	if r.primary != nil {
		result, err := r.primary.Analyze(ctx, in)
		if err == nil {
			return result, nil
		}
		r.log.Warn("remote triage failed, using fallback", zap.Error(err))
	}

	result, err := r.fallback.Analyze(ctx, in)
	if err != nil {
		r.log.Error("fallback triage failed", zap.Error(err))
		return seeDoctorFallback(), nil
	}
	return result, nil
}
