package request_models

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SignUpRequest struct {
	FullName string `json:"fullName" binding:"required,min=2,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

type CreateAdminRequest struct {
	FullName    string `json:"fullName" binding:"required,min=2,max=120"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	AdminSecret string `json:"adminSecret" binding:"required"`
}

// UpdateProfileRequest is a merge patch: nil fields are left untouched.
type UpdateProfileRequest struct {
	FullName           *string   `json:"fullName" binding:"omitempty,min=2,max=120"`
	Age                *int      `json:"age" binding:"omitempty,min=1,max=120"`
	Gender             *string   `json:"gender" binding:"omitempty,oneof=male female other"`
	Height             *float64  `json:"height" binding:"omitempty,min=0,max=300"`
	Weight             *float64  `json:"weight" binding:"omitempty,min=0,max=500"`
	BloodType          *string   `json:"bloodType" binding:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	HealthGoals        *[]string `json:"healthGoals"`
	PhoneNumber        *string   `json:"phoneNumber" binding:"omitempty,max=20"`
	FCMToken           *string   `json:"fcmToken"`
	EmailNotifications *bool     `json:"emailNotifications"`
	SMSNotifications   *bool     `json:"smsNotifications"`
	PushNotifications  *bool     `json:"pushNotifications"`
}
