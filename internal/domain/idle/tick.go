package idle

import (
	"math"
	"time"
)

// TickReport summarizes what one Tick granted.
type TickReport struct {
	NodeID      string             `json:"node_id,omitempty"`
	Completions int64              `json:"completions"`
	XP          float64            `json:"xp"`
	Rewards     map[string]float64 `json:"rewards,omitempty"`
	Pruned      []string           `json:"pruned_effects,omitempty"`
}

func (r TickReport) Empty() bool {
	return r.Completions == 0 && len(r.Pruned) == 0
}

// Tick reconciles the active gather session against the clock. Elapsed time is
// measured from the session's last reconciliation, so any gap between calls is
// caught up in one division. dtSeconds is the caller's frame delta and is only
// checked for sanity.
func (e *Engine) Tick(dtSeconds float64) TickReport {
	if !finite(dtSeconds) || dtSeconds < 0 {
		e.log.Debug("ignoring degenerate frame delta", "dt", dtSeconds)
	}
	now := e.clock.Now()

	report := TickReport{Pruned: e.effects.Prune(now)}
	if !e.session.Active() {
		return report
	}
	report.NodeID = e.session.ActiveNodeID

	node, ok := e.idx.nodes[e.session.ActiveNodeID]
	if !ok {
		e.log.Debug("resetting gather session for unknown node", "node_id", e.session.ActiveNodeID)
		e.session = GatherSession{}
		return report
	}
	e.advance(node, now, &report)
	return report
}

func (e *Engine) advance(node Node, now time.Time, report *TickReport) {
	if !IsUnlocked(node, e.resources) {
		e.session.Progress = 0
		e.session.LastTickAt = now
		return
	}

	effects := e.effects.List()
	dur := e.cycleDuration(node, effects)

	elapsed := now.Sub(e.session.LastTickAt)
	if e.session.LastTickAt.IsZero() || elapsed < 0 {
		elapsed = 0
	}
	totalMs := e.session.Progress*msOf(dur) + msOf(elapsed)
	completed := math.Floor(totalMs / msOf(dur))

	e.session.LastTickAt = now
	if completed <= 0 {
		e.session.Progress = clamp01(totalMs / msOf(dur))
		return
	}
	e.session.Progress = clamp01((totalMs - completed*msOf(dur)) / msOf(dur))

	n := int64(completed)
	report.Completions = n
	report.Rewards = map[string]float64{}

	xpPer, rewardPer := e.cycleYield(node, effects)
	if xp := xpPer * completed; xp > 0 {
		e.gain(e.cat.experience(), xp)
		report.XP = xp
	}

	switch nd := node.(type) {
	case FishingNode:
		for i := int64(0); i < n; i++ {
			if id, ok := RollFish(nd.FishTable, e.rng); ok {
				e.gain(id, 1)
				report.Rewards[id]++
			}
		}
	case StandardNode:
		if amount := rewardPer * completed; amount > 0 {
			e.gain(nd.ResourceID, amount)
			report.Rewards[nd.ResourceID] = amount
		}
	}
}

func msOf(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
