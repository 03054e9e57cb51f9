package memory

import (
	"sync"

	"idleodyssey/internal/domain/idle"
)

// Store holds the single live engine plus the catalog it was built from.
type Store struct {
	mu      sync.Mutex
	engine  *idle.Engine
	catalog *idle.Catalog
}

func NewStore(engine *idle.Engine) *Store {
	s := &Store{}
	s.set(engine)
	return s
}

// set swaps the engine and keeps the catalog in step with it. Callers hold mu.
func (s *Store) set(engine *idle.Engine) {
	s.engine = engine
	s.catalog = nil
	if engine != nil {
		cat := engine.Catalog()
		s.catalog = &cat
	}
}
