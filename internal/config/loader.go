package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Load loads configuration from file, environment (HOTSAX_*) and defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/hotsax")
	}

	setDefaults(v)

	// HOTSAX_DISCORD_WINDOW_SIZE overrides discord.window_size
	v.SetEnvPrefix("HOTSAX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return parseConfig(v)
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.http_port", d.Server.HTTPPort)
	v.SetDefault("server.body_limit", d.Server.BodyLimit)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)

	v.SetDefault("auth.enabled", d.Auth.Enabled)

	v.SetDefault("queue.type", d.Queue.Type)
	v.SetDefault("queue.url", d.Queue.URL)

	v.SetDefault("discord.algorithm", d.Discord.Algorithm)
	v.SetDefault("discord.window_size", d.Discord.WindowSize)
	v.SetDefault("discord.paa_size", d.Discord.PAASize)
	v.SetDefault("discord.alphabet_size", d.Discord.AlphabetSize)
	v.SetDefault("discord.normalization_threshold", d.Discord.NormalizationThreshold)
	v.SetDefault("discord.discord_count", d.Discord.DiscordCount)
	v.SetDefault("discord.metric", d.Discord.Metric)
	v.SetDefault("discord.seed", d.Discord.Seed)
	v.SetDefault("discord.parallelism", d.Discord.Parallelism)
	v.SetDefault("discord.timeout", d.Discord.Timeout)
	v.SetDefault("discord.max_series_length", d.Discord.MaxSeriesLength)

	v.SetDefault("worker.enabled", d.Worker.Enabled)
	v.SetDefault("worker.jobs_subject", d.Worker.JobsSubject)
	v.SetDefault("worker.results_subject", d.Worker.ResultsSubject)
	v.SetDefault("worker.rate_limit", d.Worker.RateLimit)
	v.SetDefault("worker.burst", d.Worker.Burst)
	v.SetDefault("worker.compression", d.Worker.Compression)
	v.SetDefault("worker.job_ttl", d.Worker.JobTTL)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output_path", d.Logging.OutputPath)
}

func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads configuration from file or returns default config
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			HTTPPort:        5580,
			BodyLimit:       16 * 1024 * 1024,
			ShutdownTimeout: 10 * time.Second,
		},
		Queue: QueueConfig{
			Type: "memory",
			URL:  "nats://localhost:4222",
		},
		Discord: DiscordConfig{
			Algorithm:              "hotsax",
			WindowSize:             100,
			PAASize:                4,
			AlphabetSize:           4,
			NormalizationThreshold: 0.01,
			DiscordCount:           1,
			Metric:                 "euclidean",
			Seed:                   0,
			Parallelism:            0,
			Timeout:                2 * time.Minute,
			MaxSeriesLength:        1_000_000,
		},
		Worker: WorkerConfig{
			Enabled:        true,
			JobsSubject:    "hotsax.jobs",
			ResultsSubject: "hotsax.results",
			RateLimit:      0,
			Burst:          1,
			Compression:    "snappy",
			JobTTL:         time.Hour,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
		},
	}
}
