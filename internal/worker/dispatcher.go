package worker

import (
	"context"
	"fmt"

	"github.com/soltixdb/hotsax/internal/compression"
	"github.com/soltixdb/hotsax/internal/config"
	"github.com/soltixdb/hotsax/internal/jobs"
	"github.com/soltixdb/hotsax/internal/logging"
	"github.com/soltixdb/hotsax/internal/models"
	"github.com/soltixdb/hotsax/internal/queue"
)

// Dispatcher is the API side of the job flow: it publishes submitted jobs
// and folds worker results into the job store.
type Dispatcher struct {
	queue  queue.Queue
	codec  *jobs.Codec
	store  *jobs.Store
	cfg    config.WorkerConfig
	logger *logging.Logger
}

// NewDispatcher creates a dispatcher
func NewDispatcher(q queue.Queue, store *jobs.Store, cfg config.WorkerConfig, logger *logging.Logger) (*Dispatcher, error) {
	codec, err := newCodec(cfg.Compression)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Global()
	}
	return &Dispatcher{
		queue:  q,
		codec:  codec,
		store:  store,
		cfg:    cfg,
		logger: logger.With("component", "dispatcher"),
	}, nil
}

// Start subscribes to the results subject
func (d *Dispatcher) Start() error {
	if err := d.queue.Subscribe(d.cfg.ResultsSubject, d.handleResult); err != nil {
		return fmt.Errorf("failed to subscribe to results: %w", err)
	}
	return nil
}

// Stop unsubscribes from the results subject
func (d *Dispatcher) Stop() error {
	return d.queue.Unsubscribe(d.cfg.ResultsSubject)
}

// Submit registers a job and publishes it to the workers
func (d *Dispatcher) Submit(ctx context.Context, req models.DiscordRequest) (*jobs.Job, error) {
	job := jobs.NewJob(req, logging.RequestID(ctx))

	data, err := d.codec.EncodeJob(job)
	if err != nil {
		return nil, err
	}
	if err := d.store.Add(job); err != nil {
		return nil, err
	}
	if err := d.queue.Publish(ctx, d.cfg.JobsSubject, data); err != nil {
		d.store.Update(&jobs.Result{
			JobID:  job.ID,
			Status: jobs.StatusFailed,
			Error:  &models.ErrorDetail{Code: "QUEUE_ERROR", Message: err.Error()},
		})
		return nil, fmt.Errorf("failed to publish job: %w", err)
	}

	d.logger.WithContext(ctx).Debug("Job submitted",
		"job_id", job.ID,
		"payload_bytes", len(data))
	return job, nil
}

// Status returns the tracked state of a job
func (d *Dispatcher) Status(id string) (jobs.Entry, bool) {
	return d.store.Get(id)
}

func (d *Dispatcher) handleResult(ctx context.Context, data []byte) error {
	res, err := d.codec.DecodeResult(data)
	if err != nil {
		d.logger.Error("Dropping undecodable result", "size", len(data), "error", err)
		return nil
	}
	d.store.Update(res)
	return nil
}

func newCodec(name string) (*jobs.Codec, error) {
	algo, err := compression.ParseAlgorithm(name)
	if err != nil {
		return nil, err
	}
	return jobs.NewCodec(algo)
}
