package dispatcher

import (
	"context"
	"errors"
	"sync"

	"go-modguard/internal/logging"
)

// RESTWorker drains the job queue and executes punishments. Multiple workers
// may run; jobs for distinct actors are independent.
type RESTWorker struct {
	queue    *JobQueue
	executor *RequestExecutor
	workerID int
	onDone   func(job *Job, err error)
}

func NewRESTWorker(queue *JobQueue, executor *RequestExecutor, workerID int, onDone func(job *Job, err error)) *RESTWorker {
	return &RESTWorker{
		queue:    queue,
		executor: executor,
		workerID: workerID,
		onDone:   onDone,
	}
}

// Run consumes jobs until the context is cancelled.
func (rw *RESTWorker) Run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-rw.queue.Jobs():
			rw.execute(job)
		}
	}
}

func (rw *RESTWorker) execute(job *Job) {
	var err error
	switch job.Type {
	case JobTypeBan:
		var elapsed int64
		if d, e := rw.executor.ExecuteBan(job.GuildID, job.UserID, job.Reason); e != nil {
			err = e
		} else {
			elapsed = d.Milliseconds()
			logging.Info("[DISPATCH] worker %d banned %s in guild %s (%d ms): %s",
				rw.workerID, job.UserID, job.GuildID, elapsed, job.Reason)
		}
	case JobTypeKick:
		if _, e := rw.executor.ExecuteKick(job.GuildID, job.UserID, job.Reason); e != nil {
			err = e
		} else {
			logging.Info("[DISPATCH] worker %d kicked %s from guild %s: %s",
				rw.workerID, job.UserID, job.GuildID, job.Reason)
		}
	}

	if err != nil {
		if errors.Is(err, ErrForbidden) {
			logging.Warn("[DISPATCH] no permission to punish %s in guild %s, skipping", job.UserID, job.GuildID)
		} else {
			logging.Error("[DISPATCH] punishment failed for %s in guild %s: %v", job.UserID, job.GuildID, err)
		}
	}

	if rw.onDone != nil {
		rw.onDone(job, err)
	}
}
