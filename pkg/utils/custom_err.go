package utils

import "errors"

var (
	ErrDatabaseError = errors.New("database error")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("an account with this email already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidAdminSecret = errors.New("invalid admin secret key")
	ErrUnauthorized       = errors.New("unauthorized")

	ErrSessionNotFound      = errors.New("session not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrScheduleNotFound     = errors.New("scheduled notification not found")
	ErrReportNotFound       = errors.New("report not found")
	ErrFileNotFound         = errors.New("file not found on server")

	ErrInvalidTime      = errors.New("time must be in HH:MM format")
	ErrInvalidChannel   = errors.New("channels may only contain email or sms")
	ErrInvalidFileType  = errors.New("only images and PDF files are allowed")
	ErrFileTooLarge     = errors.New("file exceeds the 5MB limit")
	ErrSymptomsTooShort = errors.New("symptomsText must be at least 10 characters")

	ErrAIUnavailable = errors.New("ai provider unavailable")
	ErrEmailFailed   = errors.New("failed to send email")
)
