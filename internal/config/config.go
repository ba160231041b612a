package config

import (
	"fmt"
	"strings"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Queue   QueueConfig   `mapstructure:"queue"`
	Discord DiscordConfig `mapstructure:"discord"`
	Worker  WorkerConfig  `mapstructure:"worker"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	HTTPPort        int           `mapstructure:"http_port"`
	BodyLimit       int           `mapstructure:"body_limit"`       // Max request body in bytes
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"` // Graceful shutdown budget
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`  // Enable/disable API key authentication
	APIKeys []string `mapstructure:"api_keys"` // List of valid API keys
}

// QueueConfig represents message queue configuration
type QueueConfig struct {
	Type     string `mapstructure:"type"` // nats, redis, kafka, memory
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`

	// Redis-specific options
	RedisDB       int    `mapstructure:"redis_db"`
	RedisStream   string `mapstructure:"redis_stream"`   // Stream prefix (default: "hotsax")
	RedisGroup    string `mapstructure:"redis_group"`    // Consumer group (default: "hotsax-workers")
	RedisConsumer string `mapstructure:"redis_consumer"` // Consumer name (default: hostname)

	// Kafka-specific options
	KafkaBrokers []string `mapstructure:"kafka_brokers"`
	KafkaGroupID string   `mapstructure:"kafka_group_id"`
}

// DiscordConfig holds the defaults applied to discord searches that leave a
// parameter unset, plus service-level limits.
type DiscordConfig struct {
	Algorithm              string        `mapstructure:"algorithm"` // hotsax, brute_force
	WindowSize             int           `mapstructure:"window_size"`
	PAASize                int           `mapstructure:"paa_size"`
	AlphabetSize           int           `mapstructure:"alphabet_size"`
	NormalizationThreshold float64       `mapstructure:"normalization_threshold"`
	DiscordCount           int           `mapstructure:"discord_count"`
	Metric                 string        `mapstructure:"metric"` // euclidean, manhattan, chebyshev
	Seed                   uint64        `mapstructure:"seed"`
	Parallelism            int           `mapstructure:"parallelism"`      // Word index workers (0 = GOMAXPROCS)
	Timeout                time.Duration `mapstructure:"timeout"`          // Per-search budget
	MaxSeriesLength        int           `mapstructure:"max_series_length"` // Reject larger requests
}

// WorkerConfig represents the asynchronous job worker configuration
type WorkerConfig struct {
	Enabled        bool          `mapstructure:"enabled"`         // Run a worker inside the API process
	JobsSubject    string        `mapstructure:"jobs_subject"`    // Subject jobs are published to
	ResultsSubject string        `mapstructure:"results_subject"` // Subject results are published to
	RateLimit      float64       `mapstructure:"rate_limit"`      // Jobs per second (0 = unlimited)
	Burst          int           `mapstructure:"burst"`
	Compression    string        `mapstructure:"compression"` // none, snappy, lz4, zstd
	JobTTL         time.Duration `mapstructure:"job_ttl"`     // How long finished jobs are kept
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, Kitchen
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Queue.Validate(); err != nil {
		return fmt.Errorf("queue config: %w", err)
	}

	if err := c.Discord.Validate(); err != nil {
		return fmt.Errorf("discord config: %w", err)
	}

	if err := c.Worker.Validate(); err != nil {
		return fmt.Errorf("worker config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.HTTPPort)
	}
	if c.BodyLimit < 0 {
		return fmt.Errorf("body_limit cannot be negative")
	}
	return nil
}

// Validate validates queue configuration
func (c *QueueConfig) Validate() error {
	switch strings.ToLower(c.Type) {
	case "", "nats", "redis", "memory":
		return nil
	case "kafka":
		if len(c.KafkaBrokers) == 0 {
			return fmt.Errorf("queue.kafka_brokers is required for kafka")
		}
		return nil
	default:
		return fmt.Errorf("unsupported queue.type: %s", c.Type)
	}
}

// Validate validates discord defaults
func (c *DiscordConfig) Validate() error {
	if c.WindowSize <= 0 {
		return fmt.Errorf("discord.window_size must be positive")
	}
	if c.PAASize <= 0 {
		return fmt.Errorf("discord.paa_size must be positive")
	}
	if c.AlphabetSize <= 0 || c.AlphabetSize > 26 {
		return fmt.Errorf("discord.alphabet_size must be between 1 and 26")
	}
	if c.NormalizationThreshold < 0 {
		return fmt.Errorf("discord.normalization_threshold cannot be negative")
	}
	if c.DiscordCount <= 0 {
		return fmt.Errorf("discord.discord_count must be positive")
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("discord.parallelism cannot be negative")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("discord.timeout must be positive")
	}
	if c.MaxSeriesLength < c.WindowSize {
		return fmt.Errorf("discord.max_series_length must be at least discord.window_size")
	}
	return nil
}

// Validate validates worker configuration
func (c *WorkerConfig) Validate() error {
	if c.JobsSubject == "" || c.ResultsSubject == "" {
		return fmt.Errorf("worker.jobs_subject and worker.results_subject are required")
	}
	if c.JobsSubject == c.ResultsSubject {
		return fmt.Errorf("worker.jobs_subject and worker.results_subject cannot be the same")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("worker.rate_limit cannot be negative")
	}
	if c.JobTTL <= 0 {
		return fmt.Errorf("worker.job_ttl must be positive")
	}
	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}
