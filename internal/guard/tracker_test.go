package guard

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-modguard/internal/models"
)

func at(sec int) time.Time {
	return time.Unix(1_700_000_000, 0).Add(time.Duration(sec) * time.Second)
}

func TestObserveCountsWithinWindow(t *testing.T) {
	tr := NewTracker(15)

	assert.Equal(t, 1, tr.Observe("g", "u", models.CategoryBan, at(0), 10*time.Second))
	assert.Equal(t, 2, tr.Observe("g", "u", models.CategoryBan, at(3), 10*time.Second))
	assert.Equal(t, 3, tr.Observe("g", "u", models.CategoryBan, at(6), 10*time.Second))
}

func TestObserveEvictsPrefix(t *testing.T) {
	tr := NewTracker(15)
	span := 2 * time.Second

	tr.Observe("g", "u", models.CategoryBan, at(0), span)
	tr.Observe("g", "u", models.CategoryBan, at(1), span)
	tr.Observe("g", "u", models.CategoryBan, at(2), span)

	// At t=3 the window is [1,3]: t=0 is gone, t=1 and t=2 remain.
	assert.Equal(t, 2, tr.Count("g", "u", models.CategoryBan, at(3), span))

	// Far in the future everything is evicted on the next observation.
	assert.Equal(t, 1, tr.Observe("g", "u", models.CategoryBan, at(100), span))
}

func TestKeysAreIndependent(t *testing.T) {
	tr := NewTracker(15)
	span := 10 * time.Second

	tr.Observe("g", "u1", models.CategoryBan, at(0), span)
	tr.Observe("g", "u1", models.CategoryChannel, at(0), span)
	tr.Observe("g2", "u1", models.CategoryBan, at(0), span)

	assert.Equal(t, 2, tr.Observe("g", "u1", models.CategoryBan, at(1), span))
	assert.Equal(t, 1, tr.Count("g", "u1", models.CategoryChannel, at(1), span))
	assert.Equal(t, 1, tr.Count("g2", "u1", models.CategoryBan, at(1), span))
}

func TestCapacityBound(t *testing.T) {
	tr := NewTracker(5)
	span := time.Hour // no time-based eviction in play

	for i := 0; i < 50; i++ {
		n := tr.Observe("g", "u", models.CategoryBan, at(i), span)
		assert.LessOrEqual(t, n, 5)
	}
	assert.Equal(t, 5, tr.Count("g", "u", models.CategoryBan, at(50), span))
}

func TestConcurrentObserveSameKey(t *testing.T) {
	tr := NewTracker(1000)
	span := time.Hour

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tr.Observe("g", "u", models.CategoryBan, at(i), span)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 100, tr.Count("g", "u", models.CategoryBan, at(100), span))
}

func TestSweepDropsStaleWindows(t *testing.T) {
	tr := NewTracker(15)
	span := 2 * time.Second

	tr.Observe("g", "old", models.CategoryBan, at(0), span)
	tr.Observe("g", "fresh", models.CategoryBan, at(99), span)

	tr.Sweep(at(100), 10*time.Second)

	tr.mu.Lock()
	_, oldKept := tr.windows[trackerKey{GuildID: "g", ActorID: "old", Category: models.CategoryBan}]
	_, freshKept := tr.windows[trackerKey{GuildID: "g", ActorID: "fresh", Category: models.CategoryBan}]
	tr.mu.Unlock()

	assert.False(t, oldKept)
	assert.True(t, freshKept)
}
