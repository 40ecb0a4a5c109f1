package tokenstore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ox-dashboard/internal/domain/repository"
	"github.com/jhoicas/ox-dashboard/internal/infrastructure/tokenstore"
	"github.com/jhoicas/ox-dashboard/pkg/config"
)

// checkStore comportamiento común a todos los TokenStore.
func checkStore(t *testing.T, store repository.TokenStore) {
	t.Helper()
	ctx := context.Background()
	sid := uuid.NewString()
	other := uuid.NewString()

	tok, err := store.GetToken(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, tok, "sin token devuelve vacío")

	require.NoError(t, store.SetToken(ctx, sid, "a.b.c"))
	require.NoError(t, store.SetToken(ctx, other, "x.y.z"))
	tok, err = store.GetToken(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", tok)

	require.NoError(t, store.SetToken(ctx, sid, "d.e.f"))
	tok, _ = store.GetToken(ctx, sid)
	assert.Equal(t, "d.e.f", tok, "SetToken reemplaza")

	require.NoError(t, store.DeleteToken(ctx, sid))
	require.NoError(t, store.DeleteToken(ctx, sid), "borrar dos veces no es error")
	tok, _ = store.GetToken(ctx, sid)
	assert.Empty(t, tok)

	tok, _ = store.GetToken(ctx, other)
	assert.Equal(t, "x.y.z", tok, "las sesiones no se pisan")
	require.NoError(t, store.DeleteToken(ctx, other))
}

func TestMemoryStore(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	checkStore(t, store)
	assert.Equal(t, 0, store.Len())
}

// Requiere un Redis real: REDIS_ADDR=localhost:6379 go test ./...
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR no definido")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rdb, err := tokenstore.NewRedisClient(ctx, config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	defer rdb.Close()

	checkStore(t, tokenstore.NewRedisStore(rdb, "oxdash-test", time.Minute))
}
