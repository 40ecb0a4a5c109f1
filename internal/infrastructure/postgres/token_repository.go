package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ox-dashboard/internal/domain/repository"
)

// Asegura que TokenRepo implementa repository.TokenStore.
var _ repository.TokenStore = (*TokenRepo)(nil)

const tokenSchema = `
	CREATE TABLE IF NOT EXISTS dashboard_tokens (
		session_id TEXT        NOT NULL,
		name       TEXT        NOT NULL,
		value      TEXT        NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (session_id, name)
	)`

// TokenRepo implementación del puerto TokenStore sobre PostgreSQL.
type TokenRepo struct {
	pool *pgxpool.Pool
}

// NewTokenRepository construye el adaptador de persistencia para tokens de sesión.
func NewTokenRepository(pool *pgxpool.Pool) *TokenRepo {
	return &TokenRepo{pool: pool}
}

// EnsureSchema crea la tabla si no existe.
func (r *TokenRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, tokenSchema); err != nil {
		return fmt.Errorf("crear tabla dashboard_tokens: %w", err)
	}
	return nil
}

// GetToken obtiene el token de la sesión, "" si no hay fila.
func (r *TokenRepo) GetToken(ctx context.Context, sessionID string) (string, error) {
	query := `SELECT value FROM dashboard_tokens WHERE session_id = $1 AND name = $2`
	var value string
	err := r.pool.QueryRow(ctx, query, sessionID, repository.TokenKey).Scan(&value)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("get token: %w", err)
	}
	return value, nil
}

// SetToken inserta o reemplaza el token de la sesión.
func (r *TokenRepo) SetToken(ctx context.Context, sessionID, token string) error {
	query := `
		INSERT INTO dashboard_tokens (session_id, name, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (session_id, name) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := r.pool.Exec(ctx, query, sessionID, repository.TokenKey, token); err != nil {
		return fmt.Errorf("upsert token: %w", err)
	}
	return nil
}

// DeleteToken borra el token de la sesión.
func (r *TokenRepo) DeleteToken(ctx context.Context, sessionID string) error {
	query := `DELETE FROM dashboard_tokens WHERE session_id = $1 AND name = $2`
	if _, err := r.pool.Exec(ctx, query, sessionID, repository.TokenKey); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
