package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required"`
	Log         struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Server struct {
		Port            int           `yaml:"port" default:"3000" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		CORS            bool          `yaml:"cors"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Status struct {
		URL          string        `yaml:"url" default:"http://localhost:8000/api/current-status" validate:"required,url"`
		PollInterval time.Duration `yaml:"poll_interval" default:"60s" validate:"gt=0"`
		Timeout      time.Duration `yaml:"timeout" default:"30s" validate:"gt=0"`
	} `yaml:"status"`
	Dashboard struct {
		Title    string `yaml:"title" default:"Smart Energy Optimizer"`
		Currency string `yaml:"currency" default:"$"`
	} `yaml:"dashboard"`
	Cache struct {
		SnapshotTTL time.Duration `yaml:"snapshot_ttl" default:"5m"`
		MemoryMax   int           `yaml:"memory_max" default:"64" validate:"gte=1"`
		Redis       struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host" default:"localhost"`
			Port     int    `yaml:"port" default:"6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"energy"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Kafka struct {
		Enabled          bool     `yaml:"enabled"`
		Brokers          []string `yaml:"brokers"`
		DiagnosticsTopic string   `yaml:"diagnostics_topic" default:"energy.diagnostics"`
		RequiredAcks     *int     `yaml:"required_acks" default:"-1" validate:"omitempty,oneof=-1 0 1"`
		Compression      string   `yaml:"compression" default:"gzip" validate:"oneof=gzip snappy lz4 zstd"`
	} `yaml:"kafka"`
	Diagnostics struct {
		FlushInterval  time.Duration `yaml:"flush_interval" default:"30s"`
		CountThreshold int           `yaml:"count_threshold" default:"100"`
		RedisMaxLen    int64         `yaml:"redis_max_len" default:"1000" validate:"gte=0"`
	} `yaml:"diagnostics"`
	Live struct {
		Path         string        `yaml:"path" default:"/ws"`
		PingInterval time.Duration `yaml:"ping_interval" default:"30s" validate:"gt=0"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"10s" validate:"gt=0"`
		UpgradeBurst float64       `yaml:"upgrade_burst" default:"5" validate:"gte=1"`
		UpgradeRate  float64       `yaml:"upgrade_rate" default:"0.5" validate:"gt=0"`
		RenderTTL    time.Duration `yaml:"render_ttl" default:"2m"`
	} `yaml:"live"`
	TUI struct {
		LogFile     string `yaml:"log_file" default:"energy-tui.log"`
		ChartHeight int    `yaml:"chart_height" default:"10" validate:"gte=3,lte=60"`
	} `yaml:"tui"`
}

var validate = validator.New()

// Load reads a YAML file, fills unset fields with defaults and validates.
// An empty path yields a default-only configuration.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("STATUS_URL"); v != "" {
		c.Status.URL = v
	}
	if v := os.Getenv("POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("POLL_INTERVAL: %w", err)
		}
		c.Status.PollInterval = d
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("HTTP_PORT: %w", err)
		}
		c.Server.Port = p
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		host, port, found := strings.Cut(v, ":")
		c.Cache.Redis.Enabled = true
		c.Cache.Redis.Host = host
		if found {
			p, err := strconv.Atoi(port)
			if err != nil {
				return nil, fmt.Errorf("REDIS_ADDR: %w", err)
			}
			c.Cache.Redis.Port = p
		}
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Enabled = true
		c.Kafka.Brokers = strings.Split(v, ",")
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// KafkaRequiredAcks returns the producer ack level. A pointer keeps an
// explicit 0 (no acks) apart from an unset value.
func (c *Config) KafkaRequiredAcks() int {
	if c.Kafka.RequiredAcks == nil {
		return -1
	}
	return *c.Kafka.RequiredAcks
}

// Validate checks struct tags plus the cross-field rules tags cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.Status.Timeout > c.Status.PollInterval {
		return fmt.Errorf("status.timeout (%s) must not exceed status.poll_interval (%s)", c.Status.Timeout, c.Status.PollInterval)
	}
	return nil
}
