package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/resumatch/resumatch/internal/section"
)

// Orchestrator owns the job queue, the worker pool and the job store. One
// orchestrator serves the whole process.
type Orchestrator struct {
	jobs   *JobStore
	queue  chan *Job
	worker *Worker
	log    *slog.Logger

	workerCount int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type Options struct {
	WorkerCount  int
	MaxQueueSize int
	JobTTL       time.Duration
	PDFFallback  bool
}

func NewOrchestrator(segmenter *section.Segmenter, opts Options, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:        NewJobStore(opts.JobTTL),
		queue:       make(chan *Job, opts.MaxQueueSize),
		worker:      NewWorker(segmenter, opts.PDFFallback, log),
		log:         log,
		workerCount: opts.WorkerCount,
	}
}

// Start launches the worker goroutines and the periodic job cleanup.
func (o *Orchestrator) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	o.cancel = cancel

	for i := 0; i < o.workerCount; i++ {
		o.wg.Add(1)
		go o.runWorker(ctx, i)
	}

	o.wg.Add(1)
	go o.runCleanup(ctx)

	o.log.Info("pipeline started", "workers", o.workerCount, "queue_size", cap(o.queue))
}

// Stop drains the workers and waits for in-flight jobs to finish.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	o.wg.Wait()
	o.log.Info("pipeline stopped")
}

func (o *Orchestrator) runWorker(ctx context.Context, id int) {
	defer o.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-o.queue:
			o.worker.Process(ctx, job)
		}
	}
}

func (o *Orchestrator) runCleanup(ctx context.Context) {
	defer o.wg.Done()
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.jobs.Cleanup()
		}
	}
}

// Submit registers a new job and enqueues it. If the queue is full the job
// is stored as failed so the caller can still look it up.
func (o *Orchestrator) Submit(filename string, data []byte) (*Job, error) {
	job := &Job{
		ID:        NewJobID(),
		Filename:  filename,
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	job.SetFileData(data)
	o.jobs.Put(job)

	select {
	case o.queue <- job:
		o.log.Info("job queued", "job_id", job.ID, "filename", filename)
		return job, nil
	default:
		job.Fail("queued", "processing queue is full")
		return job, fmt.Errorf("queue full")
	}
}

// GetJob returns a job by ID, or nil when unknown or expired.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// ProcessSync runs a job inline, bypassing the queue. Used by the
// synchronous endpoint for small files.
func (o *Orchestrator) ProcessSync(ctx context.Context, filename string, data []byte) *Job {
	job := &Job{
		ID:        NewJobID(),
		Filename:  filename,
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	job.SetFileData(data)
	o.jobs.Put(job)
	o.worker.Process(ctx, job)
	return job
}

// QueueDepth reports how many jobs are waiting.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}
