package queue

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

func TestNewKafkaQueue_RequiresBrokers(t *testing.T) {
	if _, err := newKafkaQueue(KafkaConfig{}, nil); err == nil {
		t.Error("Expected error without brokers")
	}
}

func TestNewKafkaQueue_Defaults(t *testing.T) {
	q, err := newKafkaQueue(KafkaConfig{Brokers: []string{"localhost:9092"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = q.Close() }()

	if q.config.GroupID != "hotsax-workers" {
		t.Errorf("Expected default group, got %s", q.config.GroupID)
	}
	if q.config.MaxRetries != 3 || q.config.CommitRetries != 3 {
		t.Errorf("Unexpected retry defaults: %+v", q.config)
	}
	if q.writer("jobs") != q.writer("jobs") {
		t.Error("Expected writer to be reused per topic")
	}
}

// Requires a running broker: KAFKA_TEST=1 KAFKA_BROKERS=host:port
func TestKafkaQueue_PublishSubscribe(t *testing.T) {
	if os.Getenv("KAFKA_TEST") != "1" {
		t.Skip("Set KAFKA_TEST=1 to run Kafka integration tests")
	}
	brokers := strings.Split(os.Getenv("KAFKA_BROKERS"), ",")
	if brokers[0] == "" {
		brokers = []string{"localhost:9092"}
	}

	q, err := newKafkaQueue(KafkaConfig{Brokers: brokers, GroupID: "hotsax-test"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = q.Close() }()

	if err := q.Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	topic := "hotsax-test-" + time.Now().Format("150405")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := q.Publish(ctx, topic, []byte("job-1")); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	received := make(chan string, 1)
	_ = q.Subscribe(topic, func(ctx context.Context, data []byte) error {
		received <- string(data)
		return nil
	})

	select {
	case got := <-received:
		if got != "job-1" {
			t.Errorf("Expected job-1, got %q", got)
		}
	case <-ctx.Done():
		t.Fatal("Timed out waiting for message")
	}
}
