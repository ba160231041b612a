package handlers

import (
	"context"

	"github.com/soltixdb/hotsax/internal/logging"
	"github.com/soltixdb/hotsax/internal/models"
	"github.com/soltixdb/hotsax/internal/queue"
	"github.com/soltixdb/hotsax/internal/services"
	"github.com/soltixdb/hotsax/internal/worker"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// DiscordService is the synchronous detection backend
type DiscordService interface {
	Detect(ctx context.Context, req *models.DiscordRequest) (*models.DiscordResponse, error)
	Validate(req *models.DiscordRequest) error
	Detectors() models.DetectorListResponse
}

// Handler contains all HTTP handlers
type Handler struct {
	logger     *logging.Logger
	service    DiscordService
	dispatcher *worker.Dispatcher
	queue      queue.Queue
}

// New creates a new handler instance. dispatcher and q may be nil, in which
// case asynchronous jobs are unavailable and the health check skips the queue.
func New(logger *logging.Logger, service DiscordService, dispatcher *worker.Dispatcher, q queue.Queue) *Handler {
	return &Handler{
		logger:     logger,
		service:    service,
		dispatcher: dispatcher,
		queue:      q,
	}
}

var _ DiscordService = (*services.DiscordService)(nil)
