package observe

import (
	"context"
	"fmt"

	"idleodyssey/internal/app/ports"
	"idleodyssey/internal/domain/idle"
)

type StatUseCase struct {
	Session ports.EngineSession
}

// Execute resolves one stat. A malformed key is an invalid request; a well
// formed key the catalog does not define is ports.ErrNotFound.
func (u StatUseCase) Execute(ctx context.Context, req StatRequest) (StatResponse, error) {
	key, err := idle.ParseStatKey(req.Key)
	if err != nil {
		return StatResponse{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	var out StatResponse
	err = u.Session.Do(ctx, func(e *idle.Engine) error {
		base, ok := e.BaseStat(key)
		if !ok {
			return fmt.Errorf("stat %s: %w", key, ports.ErrNotFound)
		}
		value, _ := e.Stat(key)
		out = StatResponse{Key: key.String(), Base: base, Value: value}
		return nil
	})
	if err != nil {
		return StatResponse{}, err
	}
	return out, nil
}
