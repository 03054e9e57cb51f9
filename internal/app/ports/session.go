package ports

import (
	"context"

	"idleodyssey/internal/domain/idle"
)

// EngineSession owns one engine and runs fn with exclusive access to it.
// Every command and tick goes through Do.
type EngineSession interface {
	Do(ctx context.Context, fn func(e *idle.Engine) error) error
}

// EngineReplacer swaps the session's engine, for example after a catalog
// reload. Player state on the old engine is dropped.
type EngineReplacer interface {
	Replace(ctx context.Context, e *idle.Engine) error
}
