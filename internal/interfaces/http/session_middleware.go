package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/ox-dashboard/internal/application/session"
	"github.com/jhoicas/ox-dashboard/pkg/logger"
)

// LocalSession key del *session.Holder en c.Locals.
const LocalSession = "session"

// Duración de la cookie de sesión si no se configura otra.
const defaultCookieMaxAge = 30 * 24 * time.Hour

// SessionConfig cookie que identifica al navegador.
type SessionConfig struct {
	CookieName string
	Secure     bool
	MaxAge     time.Duration
}

// SessionMiddleware resuelve la sesión del navegador a partir de la cookie (uuid) y la deja
// en c.Locals ya inicializada. Sin cookie válida se emite una nueva.
func SessionMiddleware(reg *session.Registry, cfg SessionConfig, log *logger.Logger) fiber.Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = "sid"
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = defaultCookieMaxAge
	}
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(cfg.CookieName)
		if _, err := uuid.Parse(sid); err != nil {
			sid = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     cfg.CookieName,
				Value:    sid,
				Path:     "/",
				MaxAge:   int(cfg.MaxAge.Seconds()),
				Secure:   cfg.Secure,
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		h, err := reg.Get(c.Context(), sid)
		if err != nil {
			// el store falló: la sesión queda anónima y la petición sigue
			log.Warn().Err(err).Str("sid", sid).Msg("no se pudo restaurar la sesión")
		}
		c.Locals(LocalSession, h)
		return c.Next()
	}
}

// GetSession devuelve el holder de la petición (después de SessionMiddleware) o nil.
func GetSession(c *fiber.Ctx) *session.Holder {
	h, _ := c.Locals(LocalSession).(*session.Holder)
	return h
}
