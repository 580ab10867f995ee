// models/auth.go - Auth-related requests and responses
package models

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,phone"`
	Name     string `json:"name" validate:"required,min=2"`
	Password string `json:"password" validate:"required,min=6"`
}

type UpdateProfileRequest struct {
	Name   string `json:"name,omitempty"`
	Phone  string `json:"phone,omitempty" validate:"omitempty,phone"`
	Avatar string `json:"avatar,omitempty"`

	EmergencyContacts []EmergencyContact `json:"emergencyContacts,omitempty" validate:"omitempty,dive"`
}

type SendCodeRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type VerifyCodeRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type AuthResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// AuthSnapshot is the shape persisted to the state mirror on every auth
// mutation, so a restart restores the session slot.
type AuthSnapshot struct {
	User *User `json:"user"`
}
