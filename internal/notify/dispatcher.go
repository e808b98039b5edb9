package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Manirmaths/Naijaprep/internal/worker"
)

const sendTimeout = 10 * time.Second

// Dispatcher sends messages in the background so request handlers never
// wait on the broker. Failures are logged.
type Dispatcher struct {
	notifier Notifier
	pool     *worker.Pool[error]
	logger   *slog.Logger
	drained  chan struct{}
}

func NewDispatcher(n Notifier, workers int, logger *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		notifier: n,
		pool:     worker.NewPool[error](workers, 32),
		logger:   logger,
		drained:  make(chan struct{}),
	}
	go d.drain()
	return d
}

func (d *Dispatcher) drain() {
	defer close(d.drained)
	for r := range d.pool.Results() {
		if r.Output != nil {
			d.logger.Error("notification failed", "job_id", r.JobID, "error", r.Output)
		}
	}
}

// Send queues msg and returns the job id.
func (d *Dispatcher) Send(msg Message) string {
	jobID := uuid.NewString()
	d.pool.Submit(jobID, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		return d.notifier.Notify(ctx, msg)
	})
	return jobID
}

// Close waits for queued messages to be delivered.
func (d *Dispatcher) Close() {
	d.pool.Close()
	<-d.drained
}
