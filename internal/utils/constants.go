package utils

import "time"

// =============================================================================
// Timeout Constants
// =============================================================================

const (
	// DefaultRequestTimeout is the default timeout for synchronous detection requests
	DefaultRequestTimeout = 30 * time.Second

	// QueueConnectTimeout bounds broker connection checks
	QueueConnectTimeout = 5 * time.Second

	// PublishTimeout is the timeout for publishing a job or result
	PublishTimeout = 5 * time.Second
)

// =============================================================================
// Retry and Backoff Constants
// =============================================================================

const (
	// DefaultMaxRetries is the default number of retry attempts
	DefaultMaxRetries = 3

	// DefaultRetryBackoff is the default backoff duration between retries
	DefaultRetryBackoff = 100 * time.Millisecond
)

// =============================================================================
// Discord Detection Constants
// =============================================================================

const (
	// AlgorithmHotSAX selects the HOT-SAX heuristic search
	AlgorithmHotSAX = "hotsax"

	// AlgorithmBruteForce selects the exhaustive search
	AlgorithmBruteForce = "brute_force"

	// MinWindowSize is the smallest window accepted by the service
	MinWindowSize = 2
)

// =============================================================================
// Queue Type Constants
// =============================================================================
// QueueType represents the type of message queue
type QueueType string

const (
	// QueueTypeNATS represents NATS JetStream queue
	QueueTypeNATS QueueType = "nats"

	// QueueTypeRedis represents Redis Streams queue
	QueueTypeRedis QueueType = "redis"

	// QueueTypeKafka represents Apache Kafka queue
	QueueTypeKafka QueueType = "kafka"

	// QueueTypeMemory represents in-memory queue (default, single process)
	QueueTypeMemory QueueType = "memory"
)
