package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idleodyssey/internal/domain/idle"
)

type fakeSource struct {
	cat idle.Catalog
	err error
}

func (s fakeSource) Load(context.Context) (idle.Catalog, error) { return s.cat, s.err }

type fakeReplacer struct {
	engine *idle.Engine
	err    error
}

func (r *fakeReplacer) Replace(_ context.Context, e *idle.Engine) error {
	if r.err != nil {
		return r.err
	}
	r.engine = e
	return nil
}

func build(cat idle.Catalog) (*idle.Engine, error) { return idle.New(cat) }

func TestUseCase_SummarizesLiveCatalog(t *testing.T) {
	out, err := UseCase{Live: fakeSource{cat: idle.DefaultCatalog()}}.Execute(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.Nodes, "tree.oak")
	assert.Len(t, out.Upgrades, len(idle.DefaultCatalog().Upgrades))
	assert.Len(t, out.Resources, len(idle.DefaultCatalog().Resources))
}

func TestReloadUseCase_SwapsEngine(t *testing.T) {
	small := idle.DefaultCatalog()
	small.Recipes = nil
	replacer := &fakeReplacer{}

	out, err := ReloadUseCase{Source: fakeSource{cat: small}, Session: replacer, Build: build}.Execute(context.Background())
	require.NoError(t, err)
	require.NotNil(t, replacer.engine)
	assert.Empty(t, out.Recipes)
	assert.Empty(t, replacer.engine.Catalog().Recipes)
}

func TestReloadUseCase_KeepsEngineOnFailure(t *testing.T) {
	bad := idle.DefaultCatalog()
	bad.Resources = nil

	cases := []struct {
		name   string
		source fakeSource
	}{
		{"source error", fakeSource{err: errors.New("file gone")}},
		{"invalid catalog", fakeSource{cat: bad}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			replacer := &fakeReplacer{}
			_, err := ReloadUseCase{Source: tc.source, Session: replacer, Build: build}.Execute(context.Background())
			assert.ErrorIs(t, err, ErrReloadFailed)
			assert.Nil(t, replacer.engine)
		})
	}
}

func TestReloadUseCase_NotConfigured(t *testing.T) {
	_, err := ReloadUseCase{}.Execute(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}
