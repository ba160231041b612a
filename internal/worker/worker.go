// Package worker runs discord jobs taken from a queue and reports their
// results back on a second subject.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/soltixdb/hotsax/internal/config"
	"github.com/soltixdb/hotsax/internal/jobs"
	"github.com/soltixdb/hotsax/internal/logging"
	"github.com/soltixdb/hotsax/internal/models"
	"github.com/soltixdb/hotsax/internal/queue"
	"github.com/soltixdb/hotsax/internal/services"
	"github.com/soltixdb/hotsax/internal/utils"
)

// Detector runs a single detection request
type Detector interface {
	Detect(ctx context.Context, req *models.DiscordRequest) (*models.DiscordResponse, error)
}

// Worker consumes jobs from the jobs subject
type Worker struct {
	queue    queue.Queue
	codec    *jobs.Codec
	detector Detector
	limiter  *rate.Limiter
	cfg      config.WorkerConfig
	logger   *logging.Logger

	mu      sync.Mutex
	running bool
}

// New creates a worker. A zero rate limit disables throttling.
func New(q queue.Queue, detector Detector, cfg config.WorkerConfig, logger *logging.Logger) (*Worker, error) {
	codec, err := newCodec(cfg.Compression)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Global()
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Worker{
		queue:    q,
		codec:    codec,
		detector: detector,
		limiter:  limiter,
		cfg:      cfg,
		logger:   logger.With("component", "worker"),
	}, nil
}

// Start subscribes to the jobs subject
func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return errors.New("worker already running")
	}
	if err := w.queue.Subscribe(w.cfg.JobsSubject, w.handle); err != nil {
		return fmt.Errorf("failed to subscribe to jobs: %w", err)
	}
	w.running = true

	w.logger.Info("Worker started",
		"queue", w.queue.Type(),
		"jobs_subject", w.cfg.JobsSubject,
		"results_subject", w.cfg.ResultsSubject,
		"rate_limit", w.cfg.RateLimit,
		"compression", w.codec.Algorithm().String())
	return nil
}

// Stop unsubscribes from the jobs subject
func (w *Worker) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	w.running = false
	return w.queue.Unsubscribe(w.cfg.JobsSubject)
}

// handle processes one job message. Undecodable messages are dropped;
// failures to publish the result are returned so the transport redelivers.
func (w *Worker) handle(ctx context.Context, data []byte) error {
	job, err := w.codec.DecodeJob(data)
	if err != nil {
		w.logger.Error("Dropping undecodable job", "size", len(data), "error", err)
		return nil
	}

	ctx = logging.WithJobID(ctx, job.ID)
	if job.RequestID != "" {
		ctx = logging.WithRequestID(ctx, job.RequestID)
	}
	logger := w.logger.WithContext(ctx)

	if err := w.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	started := time.Now().UTC()
	if err := w.publish(ctx, &jobs.Result{JobID: job.ID, Status: jobs.StatusRunning, StartedAt: started}); err != nil {
		logger.Warn("Failed to report running status", "error", err)
	}

	res := &jobs.Result{JobID: job.ID, StartedAt: started}
	resp, err := w.detector.Detect(ctx, &job.Request)
	res.CompletedAt = time.Now().UTC()
	if err != nil {
		res.Status = jobs.StatusFailed
		res.Error = errorDetail(err)
		logger.Warn("Job failed", "code", res.Error.Code, "error", err)
	} else {
		res.Status = jobs.StatusDone
		res.Response = resp
		logger.Debug("Job done", "discords", len(resp.Discords), "duration", res.CompletedAt.Sub(started))
	}

	return w.publish(ctx, res)
}

func (w *Worker) publish(ctx context.Context, res *jobs.Result) error {
	data, err := w.codec.EncodeResult(res)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, utils.PublishTimeout)
	defer cancel()
	return w.queue.Publish(ctx, w.cfg.ResultsSubject, data)
}

func errorDetail(err error) *models.ErrorDetail {
	if se, ok := services.AsServiceError(err); ok {
		return &models.ErrorDetail{Code: se.Code, Message: se.Message, Details: se.Details}
	}
	return &models.ErrorDetail{Code: services.CodeDetectionFailed, Message: err.Error()}
}
