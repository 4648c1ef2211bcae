package game

import "sync"

// Replay stores the sequential state snapshots recorded after every
// successful operation, so a finished match can be stepped through.
type Replay struct {
	MatchID string

	mu      sync.RWMutex
	states  []*Snapshot
	current int
}

// NewReplay creates an empty replay recording.
func NewReplay(matchID string) *Replay {
	return &Replay{MatchID: matchID}
}

// RecordState appends a snapshot to the recording.
func (r *Replay) RecordState(snap *Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, snap)
}

// Start resets the playback cursor to the beginning.
func (r *Replay) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = 0
}

// Next returns the snapshot at the cursor and advances it. Returns nil at
// the end of the recording.
func (r *Replay) Next() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current < len(r.states) {
		snap := r.states[r.current]
		r.current++
		return snap
	}
	return nil
}

// Previous steps the cursor back and returns that snapshot, or nil at the
// beginning.
func (r *Replay) Previous() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current > 0 {
		r.current--
		return r.states[r.current]
	}
	return nil
}

// Skip moves the cursor forward by count (or backward for negative count),
// clamped to the recording bounds, and returns the snapshot there.
func (r *Replay) Skip(count int) *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.current + count
	if idx >= len(r.states) {
		idx = len(r.states) - 1
	}
	if idx < 0 {
		idx = 0
	}
	r.current = idx

	if idx < len(r.states) {
		return r.states[idx]
	}
	return nil
}

// Size returns the number of recorded snapshots.
func (r *Replay) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.states)
}

// Latest returns the most recent snapshot, or nil when nothing has been
// recorded yet.
func (r *Replay) Latest() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.states) == 0 {
		return nil
	}
	return r.states[len(r.states)-1]
}
