package repository

import "context"

// TokenKey nombre fijo bajo el que se guarda el bearer token de cada sesión de navegador.
const TokenKey = "token"

// TokenStore define el puerto de persistencia del token (el único estado persistido del cliente).
// Las implementaciones viven en infrastructure/tokenstore.
type TokenStore interface {
	// GetToken devuelve el token guardado o "" si no existe.
	GetToken(ctx context.Context, sessionID string) (string, error)
	SetToken(ctx context.Context, sessionID, token string) error
	// DeleteToken es idempotente: borrar un token inexistente no es error.
	DeleteToken(ctx context.Context, sessionID string) error
}
