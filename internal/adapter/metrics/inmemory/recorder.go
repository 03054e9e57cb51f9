package inmemory

import (
	"maps"
	"sync"
)

type Snapshot struct {
	CommandTotal    uint64            `json:"command_total"`
	CommandAccepted uint64            `json:"command_accepted"`
	CommandRejected uint64            `json:"command_rejected"`
	CommandFailure  uint64            `json:"command_failure"`
	ByCommand       map[string]uint64 `json:"by_command"`
	ByRejectCode    map[string]uint64 `json:"by_reject_code"`
	Ticks           uint64            `json:"ticks"`
	TickCompletions uint64            `json:"tick_completions"`
}

type Recorder struct {
	mu          sync.Mutex
	accepted    uint64
	rejected    uint64
	failure     uint64
	byCommand   map[string]uint64
	byReject    map[string]uint64
	ticks       uint64
	completions uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byCommand: map[string]uint64{},
		byReject:  map[string]uint64{},
	}
}

func (r *Recorder) RecordAccepted(command string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accepted++
	r.byCommand[command]++
}

func (r *Recorder) RecordRejected(command, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
	r.byCommand[command]++
	r.byReject[code]++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) RecordTick(completions int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks++
	if completions > 0 {
		r.completions += uint64(completions)
	}
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		CommandAccepted: r.accepted,
		CommandRejected: r.rejected,
		CommandFailure:  r.failure,
		CommandTotal:    r.accepted + r.rejected + r.failure,
		ByCommand:       maps.Clone(r.byCommand),
		ByRejectCode:    maps.Clone(r.byReject),
		Ticks:           r.ticks,
		TickCompletions: r.completions,
	}
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
