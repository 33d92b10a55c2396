package request_models

type CreateScheduleRequest struct {
	Label         string   `json:"label" binding:"required,max=200"`
	Time          string   `json:"time" binding:"required,hhmm"`
	Channels      []string `json:"channels" binding:"omitempty,dive,oneof=email sms"`
	ReminderEmail string   `json:"reminderEmail" binding:"omitempty,email"`
}

type UpdateScheduleRequest struct {
	Label         *string   `json:"label" binding:"omitempty,min=1,max=200"`
	Time          *string   `json:"time" binding:"omitempty,hhmm"`
	Channels      *[]string `json:"channels" binding:"omitempty,dive,oneof=email sms"`
	ReminderEmail *string   `json:"reminderEmail" binding:"omitempty,email"`
}
