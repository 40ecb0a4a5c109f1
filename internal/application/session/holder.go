// Package session mantiene la identidad del usuario de cada navegador a partir del bearer token
// persistido. Un Holder por sesión de navegador; nunca estado global.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/ox-dashboard/internal/domain"
	"github.com/jhoicas/ox-dashboard/internal/domain/entity"
	"github.com/jhoicas/ox-dashboard/internal/domain/repository"
	"github.com/jhoicas/ox-dashboard/pkg/jwt"
)

// Holder única fuente de verdad de "quién es el usuario y si está autenticado".
//
// Ciclo de vida: NewHolder (loading=true) → Initialize (loading=false, una sola vez)
// → Login/Logout/UpdateUser.
type Holder struct {
	mu        sync.RWMutex
	store     repository.TokenStore
	sessionID string
	now       func() time.Time

	token   string
	user    *entity.User
	expires time.Time
	loading bool
	once    sync.Once
}

// Option configura un Holder.
type Option func(*Holder)

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(h *Holder) { h.now = now }
}

// NewHolder construye un holder en estado loading para la sesión sessionID.
func NewHolder(store repository.TokenStore, sessionID string, opts ...Option) *Holder {
	h := &Holder{
		store:     store,
		sessionID: sessionID,
		now:       time.Now,
		loading:   true,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Initialize lee el token persistido y deriva la sesión. Solo la primera llamada tiene efecto;
// loading pasa a false al terminar en todas las ramas.
// El error devuelto (fallo del store) es informativo: la sesión queda anónima igualmente.
func (h *Holder) Initialize(ctx context.Context) error {
	var err error
	h.once.Do(func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		defer func() { h.loading = false }()
		err = h.restore(ctx)
	})
	return err
}

func (h *Holder) restore(ctx context.Context) error {
	stored, err := h.store.GetToken(ctx, h.sessionID)
	if err != nil {
		return fmt.Errorf("session: leer token: %w", err)
	}
	if stored == "" {
		return nil
	}
	user, claims, err := decode(stored)
	if err != nil || claims.Expired(h.now()) {
		return h.discard(ctx)
	}
	h.token = stored
	h.user = user
	h.expires = claims.ExpiresAt.Time
	return nil
}

// discard borra el token persistido y deja la sesión anónima. Requiere h.mu tomado.
func (h *Holder) discard(ctx context.Context) error {
	h.token = ""
	h.user = nil
	h.expires = time.Time{}
	if err := h.store.DeleteToken(ctx, h.sessionID); err != nil {
		return fmt.Errorf("session: descartar token: %w", err)
	}
	return nil
}

// decode convierte el token en usuario; falla solo si no se puede decodificar.
func decode(token string) (*entity.User, *jwt.Claims, error) {
	claims, err := jwt.Decode(token)
	if err != nil || claims.ExpiresAt == nil {
		return nil, nil, domain.ErrInvalidToken
	}
	return &entity.User{
		ID:        claims.Sub,
		Email:     claims.Email,
		Role:      entity.Role(claims.Role),
		CompanyID: claims.CompanyID,
	}, claims, nil
}

// Login persiste el token recién emitido y puebla la sesión con su payload.
// Un token que no se puede decodificar se rechaza sin tocar estado ni storage. Uno ya
// expirado se guarda igual y cae en el siguiente Expire.
func (h *Holder) Login(ctx context.Context, token string) error {
	user, claims, err := decode(token)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.store.SetToken(ctx, h.sessionID, token); err != nil {
		return fmt.Errorf("session: guardar token: %w", err)
	}
	h.token = token
	h.user = user
	h.expires = claims.ExpiresAt.Time
	return nil
}

// Expire descarta la sesión si el exp del token ya pasó (mismo camino silencioso que
// Initialize). Devuelve true si la sesión se descartó.
func (h *Holder) Expire(ctx context.Context) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.token == "" || h.now().Before(h.expires) {
		return false, nil
	}
	return true, h.discard(ctx)
}

// Logout borra el token persistido y limpia la sesión. La sesión en memoria queda vacía
// aunque el borrado en el store falle; el error se devuelve para registrarlo.
func (h *Holder) Logout(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = ""
	h.user = nil
	h.expires = time.Time{}
	if err := h.store.DeleteToken(ctx, h.sessionID); err != nil {
		return fmt.Errorf("session: borrar token: %w", err)
	}
	return nil
}

// UpdateUser aplica un merge superficial sobre la sesión actual. No-op sin sesión.
// Solo refleja cambios que el servidor acaba de confirmar (rol, empresa) sin emitir token nuevo.
func (h *Holder) UpdateUser(patch entity.UserPatch) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.user == nil {
		return
	}
	updated := patch.Apply(*h.user)
	h.user = &updated
}

// User devuelve una copia de la sesión, o nil si no hay.
func (h *Holder) User() *entity.User {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.user == nil {
		return nil
	}
	u := *h.user
	if u.CompanyID != nil {
		id := *u.CompanyID
		u.CompanyID = &id
	}
	return &u
}

// Token devuelve el bearer token actual o "".
func (h *Holder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// IsLoading indica si Initialize todavía no terminó.
func (h *Holder) IsLoading() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loading
}

// IsAuthenticated ⇔ hay token y hay sesión.
func (h *Holder) IsAuthenticated() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token != "" && h.user != nil
}

// SessionID identificador de la sesión de navegador.
func (h *Holder) SessionID() string {
	return h.sessionID
}

// IsTokenRejection indica si err corresponde a un token descartado por Login.
func IsTokenRejection(err error) bool {
	return errors.Is(err, domain.ErrInvalidToken)
}
