package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"idleodyssey/internal/app/ports"
	"idleodyssey/internal/domain/idle"
)

var (
	ErrReloadFailed  = errors.New("catalog reload failed")
	ErrNotConfigured = errors.New("catalog reload not configured")
)

// UseCase reports the catalog the live engine runs on.
type UseCase struct {
	Live ports.CatalogSource
}

func (u UseCase) Execute(ctx context.Context) (Response, error) {
	cat, err := u.Live.Load(ctx)
	if err != nil {
		return Response{}, err
	}
	return summarize(cat), nil
}

// ReloadUseCase reads the catalog source again and swaps in a fresh engine
// built from it. The old engine keeps running when anything fails.
type ReloadUseCase struct {
	Source  ports.CatalogSource
	Session ports.EngineReplacer
	Build   func(idle.Catalog) (*idle.Engine, error)
	Logger  *slog.Logger
}

func (u ReloadUseCase) Execute(ctx context.Context) (Response, error) {
	if u.Source == nil || u.Session == nil || u.Build == nil {
		return Response{}, ErrNotConfigured
	}
	cat, err := u.Source.Load(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return Response{}, err
		}
		return Response{}, fmt.Errorf("%w: %w", ErrReloadFailed, err)
	}
	e, err := u.Build(cat)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrReloadFailed, err)
	}
	if err := u.Session.Replace(ctx, e); err != nil {
		return Response{}, err
	}
	out := summarize(e.Catalog())
	u.logger().Info("catalog reloaded", "nodes", len(out.Nodes), "upgrades", len(out.Upgrades), "recipes", len(out.Recipes))
	return out, nil
}

func (u ReloadUseCase) logger() *slog.Logger {
	if u.Logger != nil {
		return u.Logger
	}
	return slog.Default()
}
