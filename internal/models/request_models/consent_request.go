package request_models

type RecordConsentRequest struct {
	ConsentGiven *bool  `json:"consentGiven" binding:"required"`
	ConsentText  string `json:"consentText"`
}
