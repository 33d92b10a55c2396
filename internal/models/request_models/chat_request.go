package request_models

type ChatTurn struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

type ChatRequest struct {
	Message string     `json:"message" binding:"required,max=4000"`
	History []ChatTurn `json:"history" binding:"omitempty,dive"`
}

type DoctorSearchQuery struct {
	City      string `form:"city" binding:"omitempty,max=80"`
	Specialty string `form:"specialty" binding:"omitempty,max=80"`
}
