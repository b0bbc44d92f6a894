package dispatcher

import "time"

type JobType uint8

const (
	JobTypeBan JobType = iota
	JobTypeKick
)

// Job is one outbound punishment request. Delivery is at-most-once: a failed
// job is logged and dropped, never retried by the queue.
type Job struct {
	Type       JobType
	GuildID    string
	UserID     string
	Reason     string
	Category   string
	EnqueuedAt time.Time
}

func NewBanJob(guildID, userID, reason, category string) *Job {
	return &Job{
		Type:       JobTypeBan,
		GuildID:    guildID,
		UserID:     userID,
		Reason:     reason,
		Category:   category,
		EnqueuedAt: time.Now(),
	}
}

func NewKickJob(guildID, userID, reason, category string) *Job {
	return &Job{
		Type:       JobTypeKick,
		GuildID:    guildID,
		UserID:     userID,
		Reason:     reason,
		Category:   category,
		EnqueuedAt: time.Now(),
	}
}

// JobQueue is a bounded FIFO consumed by the REST workers.
type JobQueue struct {
	jobs chan *Job
}

func NewJobQueue(size int) *JobQueue {
	if size <= 0 {
		size = 1024
	}
	return &JobQueue{jobs: make(chan *Job, size)}
}

// Enqueue offers a job without blocking. Returns false when the queue is
// full; the caller decides whether that matters.
func (q *JobQueue) Enqueue(job *Job) bool {
	select {
	case q.jobs <- job:
		return true
	default:
		return false
	}
}

func (q *JobQueue) Jobs() <-chan *Job {
	return q.jobs
}

func (q *JobQueue) Len() int {
	return len(q.jobs)
}
