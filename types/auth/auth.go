package auth

import "github.com/go-playground/validator/v10"

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

func (req *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (req *RefreshRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}

type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=255"`
	FullName string `json:"full_name" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=ADMIN MANAGER DISPATCHER VIEWER"`
}

func (req *RegisterUserRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}

// LoginResponse carries the issued token pair and the resolved role
type LoginResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresAt    int64       `json:"expires_at"`
	User         interface{} `json:"user"`
}
