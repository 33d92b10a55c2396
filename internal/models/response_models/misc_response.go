package response_models

import (
	"time"

	"apnadoctor/internal/models/db_models"
	"apnadoctor/pkg/utils"
)

type ConsentCheckResponse struct {
	HasConsent bool             `json:"hasConsent"`
	Consent    *ConsentResponse `json:"consent"`
}

type ConsentResponse struct {
	ID           string    `json:"id"`
	ConsentGiven bool      `json:"consentGiven"`
	ConsentText  string    `json:"consentText"`
	CreatedAt    time.Time `json:"createdAt"`
}

func NewConsentResponse(r *db_models.ConsentRecord) *ConsentResponse {
	if r == nil {
		return nil
	}
	return &ConsentResponse{
		ID:           r.ID.String(),
		ConsentGiven: r.ConsentGiven,
		ConsentText:  r.ConsentText,
		CreatedAt:    utils.FromUnixSeconds(r.CreatedAt),
	}
}

type NotificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewNotificationResponses(items []db_models.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, NotificationResponse{
			ID:        n.ID.String(),
			Title:     n.Title,
			Message:   n.Message,
			Type:      string(n.Type),
			IsRead:    n.IsRead,
			CreatedAt: utils.FromUnixSeconds(n.CreatedAt),
		})
	}
	return out
}

type ScheduleResponse struct {
	ID            string    `json:"id"`
	Label         string    `json:"label"`
	Time          string    `json:"time"`
	Channels      []string  `json:"channels"`
	ReminderEmail string    `json:"reminderEmail,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

func NewScheduleResponse(s *db_models.ScheduledNotification) ScheduleResponse {
	channels := []string(s.Channels)
	if channels == nil {
		channels = []string{}
	}
	return ScheduleResponse{
		ID:            s.ID.String(),
		Label:         s.Label,
		Time:          s.Time,
		Channels:      channels,
		ReminderEmail: s.ReminderEmail,
		IsActive:      s.IsActive,
		CreatedAt:     utils.FromUnixSeconds(s.CreatedAt),
	}
}

func NewScheduleResponses(items []db_models.ScheduledNotification) []ScheduleResponse {
	out := make([]ScheduleResponse, 0, len(items))
	for i := range items {
		out = append(out, NewScheduleResponse(&items[i]))
	}
	return out
}

type MedicalReportResponse struct {
	ID           string                    `json:"id"`
	Filename     string                    `json:"filename"`
	OriginalName string                    `json:"originalName"`
	MimeType     string                    `json:"mimetype"`
	Size         int64                     `json:"size"`
	UploadDate   time.Time                 `json:"uploadDate"`
	AIAnalysis   *db_models.ReportAnalysis `json:"aiAnalysis"`
}

func NewMedicalReportResponse(r *db_models.MedicalReport) MedicalReportResponse {
	return MedicalReportResponse{
		ID:           r.ID.String(),
		Filename:     r.Filename,
		OriginalName: r.OriginalName,
		MimeType:     r.MimeType,
		Size:         r.Size,
		UploadDate:   utils.FromUnixSeconds(r.UploadDate),
		AIAnalysis:   r.AIAnalysis.Data(),
	}
}

func NewMedicalReportResponses(items []db_models.MedicalReport) []MedicalReportResponse {
	out := make([]MedicalReportResponse, 0, len(items))
	for i := range items {
		out = append(out, NewMedicalReportResponse(&items[i]))
	}
	return out
}

type Doctor struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Specialty  string  `json:"specialty"`
	Hospital   string  `json:"hospital"`
	City       string  `json:"city"`
	Experience string  `json:"experience"`
	Rating     float64 `json:"rating"`
	Contact    string  `json:"contact"`
	Address    string  `json:"address"`
}

type DoctorSearchResponse struct {
	Recommended []Doctor `json:"recommended"`
	Source      string   `json:"source"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}
