package idle

import (
	"math"
	"time"
)

// Resolve computes (base + Σadd·stacks) · Πmul^stacks for one stat.
// Flat bonuses always land before multipliers.
func Resolve(base float64, stat StatKey, effects []Effect) float64 {
	add := 0.0
	mul := 1.0
	for _, e := range effects {
		stacks := e.stackCount()
		for _, m := range e.Modifiers {
			if m.Stat != stat {
				continue
			}
			switch m.Kind {
			case ModifierAdd:
				add += m.Value * float64(stacks)
			case ModifierMul:
				mul *= math.Pow(m.Value, float64(stacks))
			}
		}
	}
	return (base + add) * mul
}

// PruneExpired drops every effect whose expiry is at or before now.
func PruneExpired(effects []Effect, now time.Time) []Effect {
	out := make([]Effect, 0, len(effects))
	for _, e := range effects {
		if e.ExpiresAt != nil && !e.ExpiresAt.After(now) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// EffectSet keeps effects keyed by id in insertion order.
type EffectSet struct {
	byID  map[string]Effect
	order []string
}

func NewEffectSet() *EffectSet {
	return &EffectSet{byID: map[string]Effect{}}
}

func (s *EffectSet) Len() int {
	return len(s.order)
}

func (s *EffectSet) Get(id string) (Effect, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// Add merges by id: stacks are summed and capped at MaxStacks (the existing
// cap wins, falling back to the incoming one). Other fields take the incoming
// values.
func (s *EffectSet) Add(effect Effect) Effect {
	incoming := effect.stackCount()
	current, ok := s.byID[effect.ID]
	if !ok {
		effect.Stacks = capStacks(incoming, effect.MaxStacks)
		s.byID[effect.ID] = effect
		s.order = append(s.order, effect.ID)
		return effect
	}
	maxStacks := current.MaxStacks
	if maxStacks <= 0 {
		maxStacks = effect.MaxStacks
	}
	merged := effect
	merged.MaxStacks = maxStacks
	merged.Stacks = capStacks(current.stackCount()+incoming, maxStacks)
	s.byID[effect.ID] = merged
	return merged
}

func (s *EffectSet) Remove(id string) bool {
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Prune removes expired effects and returns their ids.
func (s *EffectSet) Prune(now time.Time) []string {
	var removed []string
	kept := s.order[:0]
	for _, id := range s.order {
		e := s.byID[id]
		if e.ExpiresAt != nil && !e.ExpiresAt.After(now) {
			delete(s.byID, id)
			removed = append(removed, id)
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
	return removed
}

func (s *EffectSet) List() []Effect {
	out := make([]Effect, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

func (s *EffectSet) clone() *EffectSet {
	out := &EffectSet{
		byID:  make(map[string]Effect, len(s.byID)),
		order: append([]string(nil), s.order...),
	}
	for id, e := range s.byID {
		out.byID[id] = e.clone()
	}
	return out
}

func capStacks(stacks, maxStacks int) int {
	if maxStacks > 0 && stacks > maxStacks {
		return maxStacks
	}
	return stacks
}
