package session

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/ox-dashboard/internal/domain/repository"
)

// Registry mantiene un Holder por sesión de navegador en memoria del proceso.
// Un holder sin uso durante ttl se descarta; la siguiente petición lo reconstruye desde el
// token persistido (equivalente a recargar la página).
type Registry struct {
	mu    sync.Mutex
	store repository.TokenStore
	ttl   time.Duration
	opts  []Option
	now   func() time.Time
	m     map[string]entry
}

type entry struct {
	h        *Holder
	lastSeen time.Time
}

// NewRegistry construye el registro. ttl <= 0 usa 30 minutos.
func NewRegistry(store repository.TokenStore, ttl time.Duration, opts ...Option) *Registry {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Registry{
		store: store,
		ttl:   ttl,
		opts:  opts,
		now:   time.Now,
		m:     make(map[string]entry),
	}
}

// Get devuelve el holder de sessionID ya inicializado, creándolo si no existe. Cada petición
// equivale a una carga de página: un token cuyo exp ya pasó se descarta aquí aunque el holder
// siga en uso. Los errores del store se propagan solo para registrarlos.
func (r *Registry) Get(ctx context.Context, sessionID string) (*Holder, error) {
	now := r.now()

	r.mu.Lock()
	e, ok := r.m[sessionID]
	if ok && now.Sub(e.lastSeen) > r.ttl {
		ok = false
	}
	if !ok {
		e.h = NewHolder(r.store, sessionID, r.opts...)
	}
	e.lastSeen = now
	r.m[sessionID] = e
	r.mu.Unlock()

	if err := e.h.Initialize(ctx); err != nil {
		return e.h, err
	}
	_, err := e.h.Expire(ctx)
	return e.h, err
}

// Drop descarta el holder de sessionID (logout).
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	delete(r.m, sessionID)
	r.mu.Unlock()
}

// Sweep elimina los holders inactivos y devuelve cuántos se descartaron.
func (r *Registry) Sweep() int {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, e := range r.m {
		if now.Sub(e.lastSeen) > r.ttl {
			delete(r.m, id)
			n++
		}
	}
	return n
}

// Len número de holders en memoria.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.m)
}

// Run barre periódicamente hasta que ctx se cancele.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.Sweep()
		}
	}
}
