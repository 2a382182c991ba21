package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceID string
	HTTPPort  int

	DatabaseURL  string
	RedisURL     string
	KafkaBrokers []string
	MaxDBConns   int32

	KafkaTopicSubmissionEvents string

	StagingDir  string
	MaxUploadMB int64

	PlatformInterpreter    string
	PlatformUploadScript   string
	PlatformMetadataScript string
	PlatformTimeoutSeconds int

	LatestCacheTTLSeconds int
}

type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
	} `yaml:"service"`
	Dependencies struct {
		DatabaseURL  string   `yaml:"database_url"`
		RedisURL     string   `yaml:"redis_url"`
		KafkaBrokers []string `yaml:"kafka_brokers"`

		KafkaTopicSubmissionEvents string `yaml:"kafka_topic_submission_events"`
	} `yaml:"dependencies"`
	Uploads struct {
		StagingDir  string `yaml:"staging_dir"`
		MaxUploadMB int64  `yaml:"max_upload_mb"`
	} `yaml:"uploads"`
	Platform struct {
		Interpreter    string `yaml:"interpreter"`
		UploadScript   string `yaml:"upload_script"`
		MetadataScript string `yaml:"metadata_script"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"platform"`
	Cache struct {
		LatestTTLSeconds int `yaml:"latest_ttl_seconds"`
	} `yaml:"cache"`
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:                  "publish-review-service",
		HTTPPort:                   5000,
		DatabaseURL:                "data/submissions.db",
		MaxDBConns:                 10,
		KafkaTopicSubmissionEvents: "submission.lifecycle",
		StagingDir:                 "uploads",
		MaxUploadMB:                500,
		PlatformInterpreter:        "python3",
		PlatformUploadScript:       "upload_video.py",
		PlatformMetadataScript:     "change_privacy_status.py",
		PlatformTimeoutSeconds:     60,
		LatestCacheTTLSeconds:      10,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Dependencies.DatabaseURL != "" {
			cfg.DatabaseURL = f.Dependencies.DatabaseURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if len(f.Dependencies.KafkaBrokers) > 0 {
			cfg.KafkaBrokers = trimNonEmpty(f.Dependencies.KafkaBrokers)
		}
		if f.Dependencies.KafkaTopicSubmissionEvents != "" {
			cfg.KafkaTopicSubmissionEvents = f.Dependencies.KafkaTopicSubmissionEvents
		}
		if f.Uploads.StagingDir != "" {
			cfg.StagingDir = f.Uploads.StagingDir
		}
		if f.Uploads.MaxUploadMB > 0 {
			cfg.MaxUploadMB = f.Uploads.MaxUploadMB
		}
		if f.Platform.Interpreter != "" {
			cfg.PlatformInterpreter = f.Platform.Interpreter
		}
		if f.Platform.UploadScript != "" {
			cfg.PlatformUploadScript = f.Platform.UploadScript
		}
		if f.Platform.MetadataScript != "" {
			cfg.PlatformMetadataScript = f.Platform.MetadataScript
		}
		if f.Platform.TimeoutSeconds > 0 {
			cfg.PlatformTimeoutSeconds = f.Platform.TimeoutSeconds
		}
		if f.Cache.LatestTTLSeconds > 0 {
			cfg.LatestCacheTTLSeconds = f.Cache.LatestTTLSeconds
		}
	}

	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.DatabaseURL = envOrDefault("DATABASE_URL", cfg.DatabaseURL)
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.KafkaBrokers = envCSV("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.KafkaTopicSubmissionEvents = envOrDefault("KAFKA_TOPIC_SUBMISSION_EVENTS", cfg.KafkaTopicSubmissionEvents)
	cfg.StagingDir = envOrDefault("UPLOAD_STAGING_DIR", cfg.StagingDir)
	cfg.PlatformInterpreter = envOrDefault("PLATFORM_INTERPRETER", cfg.PlatformInterpreter)
	cfg.PlatformUploadScript = envOrDefault("PLATFORM_UPLOAD_SCRIPT", cfg.PlatformUploadScript)
	cfg.PlatformMetadataScript = envOrDefault("PLATFORM_METADATA_SCRIPT", cfg.PlatformMetadataScript)
	cfg.PlatformTimeoutSeconds = envInt("PLATFORM_TIMEOUT_SECONDS", cfg.PlatformTimeoutSeconds)
	cfg.LatestCacheTTLSeconds = envInt("LATEST_CACHE_TTL_SECONDS", cfg.LatestCacheTTLSeconds)
	return cfg, nil
}

func (c Config) PlatformTimeout() time.Duration {
	return time.Duration(c.PlatformTimeoutSeconds) * time.Second
}

func (c Config) LatestCacheTTL() time.Duration {
	return time.Duration(c.LatestCacheTTLSeconds) * time.Second
}

func (c Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envCSV(name string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	return trimNonEmpty(strings.Split(raw, ","))
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
