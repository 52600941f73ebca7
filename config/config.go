package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	GRPC      GRPCConfig      `yaml:"grpc"`
	Log       LogConfig       `yaml:"log"`
	Storage   StorageConfig   `yaml:"storage"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Providers ProvidersConfig `yaml:"providers"`
	Booking   BookingConfig   `yaml:"booking"`
}

// HTTPConfig configures the gin listener. EnableStubs mounts stand-in
// provider APIs under /stub for local runs.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	Accounts     []AccountConfig `yaml:"accounts"`
	AllowOrigins []string        `yaml:"allow_origins"`
	EnableStubs  bool            `yaml:"enable_stubs"`
}

// AccountConfig is a basic-auth principal. PasswordHash is a bcrypt hash.
type AccountConfig struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
	Role         string `yaml:"role"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

type LogConfig struct {
	Env   string `yaml:"env"`
	Level string `yaml:"level"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingEventsTopic string   `yaml:"booking_events_topic"`
	GroupID            string   `yaml:"group_id"`
}

type ProvidersConfig struct {
	LicenseBaseURL string `yaml:"license_base_url"`
	PricingBaseURL string `yaml:"pricing_base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (p ProvidersConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

type BookingConfig struct {
	LookupCacheTTL int `yaml:"lookup_cache_ttl_seconds"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, fills defaults and validates required keys.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.GRPC.Address == "" {
		c.GRPC.Address = ":8081"
	}
	if c.Log.Env == "" {
		c.Log.Env = "dev"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageDriverPostgres
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Kafka.BookingEventsTopic == "" {
		c.Kafka.BookingEventsTopic = "car-booking-events"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "car-booking-notifier"
	}
	if c.Providers.TimeoutSeconds == 0 {
		c.Providers.TimeoutSeconds = 5
	}
	if c.Booking.LookupCacheTTL == 0 {
		c.Booking.LookupCacheTTL = 300
	}
}

func (c *Config) validate() error {
	var errs []error
	if strings.TrimSpace(c.Providers.LicenseBaseURL) == "" {
		errs = append(errs, errors.New("providers.license_base_url is required"))
	}
	if strings.TrimSpace(c.Providers.PricingBaseURL) == "" {
		errs = append(errs, errors.New("providers.pricing_base_url is required"))
	}
	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" {
			errs = append(errs, errors.New("database.host is required for postgres storage"))
		}
		if c.Database.Name == "" {
			errs = append(errs, errors.New("database.name is required for postgres storage"))
		}
	case StorageDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q is not supported", c.Storage.Driver))
	}
	for i, acc := range c.HTTP.Accounts {
		if acc.Username == "" || acc.PasswordHash == "" {
			errs = append(errs, fmt.Errorf("http.accounts[%d] needs username and password_hash", i))
		}
	}
	return errors.Join(errs...)
}
