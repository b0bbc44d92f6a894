package guard

import (
	"sync"
	"time"

	"go-modguard/internal/models"
)

// trackerKey is the composite identity of one rate window.
type trackerKey struct {
	GuildID  string
	ActorID  string
	Category models.Category
}

// window is a bounded, time-ordered sequence of event timestamps. Access is
// serialized by its mutex so concurrent events for the same key cannot
// interleave their append/trim/read sequence.
type window struct {
	mu    sync.Mutex
	times []time.Time
}

// Tracker owns the per-(guild, actor, category) rate windows. Windows are
// created lazily on first event and live for the process lifetime; they are
// not persisted.
type Tracker struct {
	mu       sync.Mutex
	windows  map[trackerKey]*window
	capacity int
}

// NewTracker builds a tracker whose windows hold at most capacity
// timestamps; oldest entries are dropped past that bound regardless of the
// time window.
func NewTracker(capacity int) *Tracker {
	if capacity <= 0 {
		capacity = 15
	}
	return &Tracker{
		windows:  make(map[trackerKey]*window),
		capacity: capacity,
	}
}

func (t *Tracker) get(key trackerKey) *window {
	t.mu.Lock()
	defer t.mu.Unlock()
	w, ok := t.windows[key]
	if !ok {
		w = &window{times: make([]time.Time, 0, t.capacity)}
		t.windows[key] = w
	}
	return w
}

// Observe appends an event timestamp, evicts entries older than span before
// it, and returns the resulting count. Entries are time-ordered, so eviction
// is a prefix trim.
func (t *Tracker) Observe(guildID, actorID string, cat models.Category, ts time.Time, span time.Duration) int {
	w := t.get(trackerKey{GuildID: guildID, ActorID: actorID, Category: cat})

	w.mu.Lock()
	defer w.mu.Unlock()

	w.times = append(w.times, ts)
	if len(w.times) > t.capacity {
		w.times = w.times[len(w.times)-t.capacity:]
	}

	cutoff := ts.Add(-span)
	trim := 0
	for trim < len(w.times) && w.times[trim].Before(cutoff) {
		trim++
	}
	if trim > 0 {
		w.times = append(w.times[:0], w.times[trim:]...)
	}

	return len(w.times)
}

// Count returns the number of entries currently inside [ts-span, ts] without
// recording an event.
func (t *Tracker) Count(guildID, actorID string, cat models.Category, ts time.Time, span time.Duration) int {
	t.mu.Lock()
	w, ok := t.windows[trackerKey{GuildID: guildID, ActorID: actorID, Category: cat}]
	t.mu.Unlock()
	if !ok {
		return 0
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	cutoff := ts.Add(-span)
	n := 0
	for _, et := range w.times {
		if !et.Before(cutoff) {
			n++
		}
	}
	return n
}

// Sweep drops windows that have been empty relative to now for longer than
// span. Opportunistic garbage collection; empty windows are harmless either
// way.
func (t *Tracker) Sweep(now time.Time, span time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := now.Add(-span)
	for key, w := range t.windows {
		w.mu.Lock()
		stale := len(w.times) == 0 || w.times[len(w.times)-1].Before(cutoff)
		w.mu.Unlock()
		if stale {
			delete(t.windows, key)
		}
	}
}
