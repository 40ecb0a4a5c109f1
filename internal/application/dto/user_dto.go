package dto

import "github.com/jhoicas/ox-dashboard/internal/domain/entity"

// BeginLoginRequest primer paso del login: email al que se envía el OTP.
type BeginLoginRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

// BeginLoginResponse respuesta de POST /auth/login. En este despliegue el backend devuelve el OTP.
type BeginLoginResponse struct {
	OTP string `json:"otp"`
}

// VerifyLoginRequest segundo paso: email + código.
type VerifyLoginRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
	OTP   string `json:"otp" form:"otp" validate:"required,max=32"`
}

// VerifyLoginResponse respuesta de POST /auth/verify.
type VerifyLoginResponse struct {
	Token string `json:"token"`
}

// SessionResponse estado de la sesión expuesto en GET /api/session.
type SessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	Loading       bool         `json:"loading"`
	User          *entity.User `json:"user"`
}
