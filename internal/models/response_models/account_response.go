package response_models

import (
	"time"

	"apnadoctor/internal/models/db_models"
	"apnadoctor/pkg/utils"
)

type AuthResponse struct {
	Token string          `json:"token"`
	User  AccountResponse `json:"user"`
}

type AccountResponse struct {
	ID        string          `json:"id"`
	FullName  string          `json:"fullName"`
	Email     string          `json:"email"`
	IsAdmin   bool            `json:"isAdmin"`
	Profile   ProfileResponse `json:"profile"`
	CreatedAt time.Time       `json:"createdAt"`
}

type ProfileResponse struct {
	Age                int      `json:"age,omitempty"`
	Gender             string   `json:"gender,omitempty"`
	Height             float64  `json:"height,omitempty"`
	Weight             float64  `json:"weight,omitempty"`
	BloodType          string   `json:"bloodType,omitempty"`
	HealthGoals        []string `json:"healthGoals"`
	PhoneNumber        string   `json:"phoneNumber,omitempty"`
	EmailNotifications bool     `json:"emailNotifications"`
	SMSNotifications   bool     `json:"smsNotifications"`
	PushNotifications  bool     `json:"pushNotifications"`
}

func NewAccountResponse(a *db_models.Account) AccountResponse {
	goals := []string(a.HealthGoals)
	if goals == nil {
		goals = []string{}
	}
	return AccountResponse{
		ID:       a.ID.String(),
		FullName: a.FullName,
		Email:    a.Email,
		IsAdmin:  a.IsAdmin,
		Profile: ProfileResponse{
			Age:                a.Age,
			Gender:             a.Gender,
			Height:             a.Height,
			Weight:             a.Weight,
			BloodType:          a.BloodType,
			HealthGoals:        goals,
			PhoneNumber:        a.PhoneNumber,
			EmailNotifications: a.EmailNotifications,
			SMSNotifications:   a.SMSNotifications,
			PushNotifications:  a.PushNotifications,
		},
		CreatedAt: utils.FromUnixSeconds(a.CreatedAt),
	}
}
