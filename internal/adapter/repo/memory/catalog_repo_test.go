package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idleodyssey/internal/app/ports"
	"idleodyssey/internal/domain/idle"
)

func TestCatalogRepo_FollowsReplacedEngine(t *testing.T) {
	store := newStore(t)
	session := NewEngineSession(store)
	repo := NewCatalogRepo(store)

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, got.Recipes, len(idle.DefaultCatalog().Recipes))

	small := idle.DefaultCatalog()
	small.Recipes = nil
	require.NoError(t, session.Replace(context.Background(), idle.MustNew(small)))

	got, err = repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Recipes)
}

func TestCatalogRepo_Empty(t *testing.T) {
	_, err := NewCatalogRepo(NewStore(nil)).Load(context.Background())
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestCatalogRepo_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewCatalogRepo(newStore(t)).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
