package memory

import (
	"context"
	"fmt"

	"idleodyssey/internal/app/ports"
	"idleodyssey/internal/domain/idle"
)

var (
	_ ports.EngineSession  = EngineSession{}
	_ ports.EngineReplacer = EngineSession{}
	_ ports.TxManager      = TxManager{}
)

// EngineSession serializes access to the store's engine. Commands and ticks
// share it, so reconciliation never races a mutation.
type EngineSession struct {
	tx    TxManager
	store *Store
}

func NewEngineSession(store *Store) EngineSession {
	return EngineSession{tx: NewTxManager(store), store: store}
}

func (s EngineSession) Do(ctx context.Context, fn func(e *idle.Engine) error) error {
	return s.tx.RunInTx(ctx, func(context.Context) error {
		if s.store.engine == nil {
			return fmt.Errorf("engine: %w", ports.ErrNotFound)
		}
		return fn(s.store.engine)
	})
}

// Replace installs a new engine once in-flight commands and ticks finish. The
// old engine's state is dropped.
func (s EngineSession) Replace(ctx context.Context, e *idle.Engine) error {
	if e == nil {
		return fmt.Errorf("replace engine: %w", ports.ErrNotFound)
	}
	return s.tx.RunInTx(ctx, func(context.Context) error {
		s.store.set(e)
		return nil
	})
}
