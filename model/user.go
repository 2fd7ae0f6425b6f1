package model

import "time"

const (
	RoleAdmin  = "ADMIN"
	RoleClient = "CLIENT"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterReq represents user registration payload
// swagger:model RegisterReq
type RegisterReq struct {
	Username         string `json:"username" validate:"required"`
	Password         string `json:"password" validate:"required,min=6"`
	Role             string `json:"role" validate:"required,oneof=ADMIN CLIENT"`
	RegistrationCode string `json:"registration_code" validate:"required"`
}

// LoginReq represents login payload
// swagger:model LoginReq
type LoginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordReq represents password change payload
// swagger:model ChangePasswordReq
type ChangePasswordReq struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}
