package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims es el payload que emite el backend: {sub, email, role, companyId?, exp}.
// sub es numérico, por eso no se embebe jwt.RegisteredClaims (Subject es string).
type Claims struct {
	Sub       int              `json:"sub"`
	Email     string           `json:"email"`
	Role      string           `json:"role"`
	CompanyID *int             `json:"companyId,omitempty"`
	ExpiresAt *jwt.NumericDate `json:"exp,omitempty"`
}

var _ jwt.Claims = (*Claims)(nil)

func (c *Claims) GetExpirationTime() (*jwt.NumericDate, error) { return c.ExpiresAt, nil }
func (c *Claims) GetIssuedAt() (*jwt.NumericDate, error)       { return nil, nil }
func (c *Claims) GetNotBefore() (*jwt.NumericDate, error)      { return nil, nil }
func (c *Claims) GetIssuer() (string, error)                   { return "", nil }
func (c *Claims) GetSubject() (string, error)                  { return fmt.Sprint(c.Sub), nil }
func (c *Claims) GetAudience() (jwt.ClaimStrings, error)       { return nil, nil }

// Expired indica si exp ya pasó respecto a now. Un token sin exp se considera expirado.
func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return true
	}
	return !c.ExpiresAt.Time.After(now)
}

// ErrMalformed se devuelve cuando el token no puede decodificarse.
var ErrMalformed = errors.New("jwt: token mal formado")

// Decode extrae el payload SIN verificar la firma.
// El dashboard no tiene el secreto: el backend valida la firma en cada llamada privilegiada,
// aquí solo se leen los claims para pintar la sesión.
func Decode(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMalformed
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return claims, nil
}

// Generate firma un token HS256 con los claims dados y expiración now+ttl.
// Solo lo usan el backend de desarrollo (cmd/mockapi) y los tests.
func Generate(secret string, claims Claims, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(ttl))
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString([]byte(secret))
}

// Verify valida firma y expiración. Lo usa el backend de desarrollo para autenticar llamadas.
func Verify(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
