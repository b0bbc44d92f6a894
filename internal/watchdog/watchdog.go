package watchdog

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"go-modguard/internal/dispatcher"
	"go-modguard/internal/guard"
	"go-modguard/internal/logging"
)

// Watchdog periodically checks the health of the punishment pipeline and the
// gateway connection, and garbage-collects stale detection windows.
type Watchdog struct {
	queue    *dispatcher.JobQueue
	queueCap int
	session  *discordgo.Session
	tracker  *guard.Tracker
	interval time.Duration
	stop     chan struct{}
}

func New(queue *dispatcher.JobQueue, queueCap int, session *discordgo.Session, tracker *guard.Tracker, interval time.Duration) *Watchdog {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Watchdog{
		queue:    queue,
		queueCap: queueCap,
		session:  session,
		tracker:  tracker,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (w *Watchdog) Start() {
	go w.monitorLoop()
}

func (w *Watchdog) Stop() {
	close(w.stop)
}

func (w *Watchdog) monitorLoop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.check()
		}
	}
}

func (w *Watchdog) check() {
	depth := w.queue.Len()
	if w.queueCap > 0 && depth*4 >= w.queueCap*3 {
		logging.Warn("[WATCHDOG] punishment queue at %d/%d, dispatch may be falling behind", depth, w.queueCap)
	}

	latency := w.session.HeartbeatLatency()
	if latency > 5*time.Second {
		logging.Warn("[WATCHDOG] gateway heartbeat latency %s, connection degraded", latency)
	}

	// Windows idle for longer than any plausible detection span are garbage.
	w.tracker.Sweep(time.Now(), 10*time.Minute)

	logging.Debug("[WATCHDOG] queue %d/%d, heartbeat %s", depth, w.queueCap, latency)
}
