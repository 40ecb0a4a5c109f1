package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ox-dashboard/internal/application/auth"
	"github.com/jhoicas/ox-dashboard/internal/application/dto"
	"github.com/jhoicas/ox-dashboard/internal/application/session"
	"github.com/jhoicas/ox-dashboard/pkg/logger"
)

// AuthHandler maneja el login por OTP y el cierre de sesión.
type AuthHandler struct {
	uc       *auth.AuthUseCase
	registry *session.Registry
	log      *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, registry *session.Registry, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, registry: registry, log: log}
}

// LoginPage GET /login: paso de email.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Title": "Sign In", "Step": "email"})
}

// BeginLogin POST /login: pide el OTP y pasa al paso de código.
func (h *AuthHandler) BeginLogin(c *fiber.Ctx) error {
	var in dto.BeginLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return render(c, "login", fiber.Map{"Title": "Sign In", "Step": "email", "Error": "Invalid form"})
	}
	if msg := validateStruct(in); msg != "" {
		return render(c, "login", fiber.Map{"Title": "Sign In", "Step": "email", "Email": in.Email, "Error": msg})
	}

	out, err := h.uc.BeginLogin(c.Context(), in)
	if err != nil {
		h.log.Debug().Err(err).Msg("login: solicitud de OTP rechazada")
		return render(c, "login", fiber.Map{"Title": "Sign In", "Step": "email", "Email": in.Email, "Error": userMessage(err)})
	}
	return render(c, "login", fiber.Map{
		"Title":    "Enter OTP",
		"Step":     "otp",
		"Email":    in.Email,
		"DebugOTP": out.OTP,
	})
}

// Verify POST /login/verify: canjea el OTP por token, abre la sesión y redirige al dashboard.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var in dto.VerifyLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return render(c, "login", fiber.Map{"Title": "Enter OTP", "Step": "otp", "Error": "Invalid form"})
	}
	otpStep := fiber.Map{"Title": "Enter OTP", "Step": "otp", "Email": in.Email}
	if msg := validateStruct(in); msg != "" {
		otpStep["Error"] = msg
		return render(c, "login", otpStep)
	}

	user, err := h.uc.Verify(c.Context(), GetSession(c), in)
	if err != nil {
		if session.IsTokenRejection(err) {
			h.log.Warn().Err(err).Str("email", in.Email).Msg("login: token rechazado")
		}
		otpStep["Error"] = userMessage(err)
		return render(c, "login", otpStep)
	}
	h.log.Info().Int("user_id", user.ID).Str("role", string(user.Role)).Msg("sesión iniciada")
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// Logout POST /logout: borra la sesión y vuelve al inicio.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	s := GetSession(c)
	if s != nil {
		if err := h.uc.Logout(c.Context(), s); err != nil {
			h.log.Error().Err(err).Str("sid", s.SessionID()).Msg("logout: no se pudo borrar el token")
		}
		h.registry.Drop(s.SessionID())
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Session godoc
// @Summary      Sesión actual
// @Description  Estado de la sesión del navegador (cookie sid).
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	s := GetSession(c)
	if s == nil {
		return c.JSON(dto.SessionResponse{})
	}
	return c.JSON(dto.SessionResponse{
		Authenticated: s.IsAuthenticated(),
		Loading:       s.IsLoading(),
		User:          s.User(),
	})
}
