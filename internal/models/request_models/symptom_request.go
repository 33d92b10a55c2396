package request_models

type AnalyzeSymptomsRequest struct {
	SymptomsText       string `json:"symptomsText" binding:"required,min=10"`
	Severity           string `json:"severity" binding:"required,oneof=mild moderate severe critical"`
	Age                int    `json:"age" binding:"required,min=1,max=120"`
	Gender             string `json:"gender" binding:"omitempty,max=20"`
	Onset              string `json:"onset" binding:"omitempty,max=120"`
	Duration           string `json:"duration" binding:"omitempty,max=120"`
	ExistingConditions string `json:"existingConditions"`
	CurrentMedications string `json:"currentMedications"`
	Allergies          string `json:"allergies"`
	IsPregnant         bool   `json:"isPregnant"`
}

type HistoryQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}
