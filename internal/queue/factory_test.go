package queue

import (
	"testing"

	"github.com/soltixdb/hotsax/internal/config"
)

func TestNewQueue_DefaultsToMemory(t *testing.T) {
	q, err := NewQueue(config.QueueConfig{}, nil)
	if err != nil {
		t.Fatalf("NewQueue failed: %v", err)
	}
	defer func() { _ = q.Close() }()

	if _, ok := q.(*MemoryQueue); !ok {
		t.Errorf("Expected *MemoryQueue, got %T", q)
	}
}

func TestNewQueue_NATS(t *testing.T) {
	url := setupTestNATS(t)

	q, err := NewQueue(config.QueueConfig{Type: "NATS", URL: url}, nil)
	if err != nil {
		t.Fatalf("NewQueue failed: %v", err)
	}
	defer func() { _ = q.Close() }()

	if q.Type() != "nats" {
		t.Errorf("Expected nats, got %s", q.Type())
	}
}

func TestNewQueue_KafkaWithoutBrokers(t *testing.T) {
	if _, err := NewQueue(config.QueueConfig{Type: "kafka"}, nil); err == nil {
		t.Error("Expected error for kafka without brokers")
	}
}

func TestNewQueue_Unsupported(t *testing.T) {
	if _, err := NewQueue(config.QueueConfig{Type: "rabbitmq"}, nil); err == nil {
		t.Error("Expected error for unsupported queue type")
	}
}
