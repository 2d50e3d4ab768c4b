package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// ChainSourceFile loads the chain registry from a JSON file
	ChainSourceFile = "file"
	// ChainSourceDatabase loads the chain registry from the chains table
	ChainSourceDatabase = "database"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadHost        string        `mapstructure:"read_host"`
	ReadPort        int           `mapstructure:"read_port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds NATS JetStream configuration.
// Settled actions are published to ResultsSubjectPrefix.<kind> on ResultsStreamName,
// an empty ResultsStreamName disables publishing.
type NATSConfig struct {
	URL                  string        `mapstructure:"url"`
	StreamName           string        `mapstructure:"stream_name"`
	ConsumerName         string        `mapstructure:"consumer_name"`
	Subject              string        `mapstructure:"subject"`
	MaxReconnects        int           `mapstructure:"max_reconnects"`
	ReconnectWait        time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName       string        `mapstructure:"connection_name"`
	AckWait              time.Duration `mapstructure:"ack_wait"`
	MaxDeliver           int           `mapstructure:"max_deliver"`
	ResultsStreamName    string        `mapstructure:"results_stream_name"`
	ResultsSubjectPrefix string        `mapstructure:"results_subject_prefix"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds

	// CORSAllowedOrigins restricts cross-origin callers, empty allows all
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`

	// MetricsAddr is where the worker serves /metrics, empty disables it
	MetricsAddr string `mapstructure:"metrics_addr"`
}

// ChainsConfig selects where the chain registry is loaded from
type ChainsConfig struct {
	Source string `mapstructure:"source"` // "file" or "database"
	Path   string `mapstructure:"path"`   // JSON file, used when Source is "file"
}

// OracleConfig holds the oracle attestation policy
type OracleConfig struct {
	Signers   []string `mapstructure:"signers"`
	Threshold int      `mapstructure:"threshold"`
}

// SignerConfig holds the key the hub signs withdrawal payloads with
type SignerConfig struct {
	PrivateKey string `mapstructure:"private_key"`
}

// WithdrawalConfig holds withdrawal request settings
type WithdrawalConfig struct {
	LockTTL time.Duration `mapstructure:"lock_ttl"`
}

// ExecutorConfig holds settlement executor settings
type ExecutorConfig struct {
	MaxRetries           uint64        `mapstructure:"max_retries"`
	RetryInitialInterval time.Duration `mapstructure:"retry_initial_interval"`
}

// RateLimitConfig holds per-client API request limits.
// RedisAddr shares the budget across API replicas, empty keeps it per process.
type RateLimitConfig struct {
	Enabled             bool   `mapstructure:"enabled"`
	RequestsPerSecond   int    `mapstructure:"requests_per_second"`
	Burst               int    `mapstructure:"burst"`
	RedisAddr           string `mapstructure:"redis_addr"`
	RedisPassword       string `mapstructure:"redis_password"`
	RedisDB             int    `mapstructure:"redis_db"`
	RedisKeyPrefix      string `mapstructure:"redis_key_prefix"`
	EnableLocalFallback bool   `mapstructure:"enable_local_fallback"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Chains     ChainsConfig     `mapstructure:"chains"`
	Oracle     OracleConfig     `mapstructure:"oracle"`
	Signer     SignerConfig     `mapstructure:"signer"`
	Withdrawal WithdrawalConfig `mapstructure:"withdrawal"`
	Executor   ExecutorConfig   `mapstructure:"executor"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
}

// SettlementWorkerConfig holds configuration for settlement-worker
type SettlementWorkerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Worker     WorkerConfig   `mapstructure:"worker"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Chains     ChainsConfig   `mapstructure:"chains"`
	Oracle     OracleConfig   `mapstructure:"oracle"`
	Executor   ExecutorConfig `mapstructure:"executor"`
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	setCommonDefaults(v)
	v.SetDefault("withdrawal.lock_ttl", "24h")
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.requests_per_second", 20)
	v.SetDefault("rate_limit.burst", 40)
	v.SetDefault("rate_limit.enable_local_fallback", true)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateChains(config.Chains); err != nil {
		return nil, err
	}
	if err := validateOracle(config.Oracle); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadSettlementWorkerConfig loads configuration for settlement-worker
func LoadSettlementWorkerConfig(configFile string, envPath string) (*SettlementWorkerConfig, error) {
	v := configureViper("settlement-worker", configFile, envPath)

	// Set defaults
	setCommonDefaults(v)
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "SETTLEMENT_ACTIONS")
	v.SetDefault("nats.consumer_name", "settlement-worker")
	v.SetDefault("nats.subject", "actions.>")
	v.SetDefault("nats.connection_name", "settlement-worker")
	v.SetDefault("nats.ack_wait", "30s")
	v.SetDefault("nats.max_deliver", 10)
	v.SetDefault("nats.results_stream_name", "SETTLEMENT_RESULTS")
	v.SetDefault("nats.results_subject_prefix", "settlements")
	v.SetDefault("worker.pool_size", 16)
	v.SetDefault("worker.queue_size", 256)
	v.SetDefault("worker.metrics_addr", ":9090")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config SettlementWorkerConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateChains(config.Chains); err != nil {
		return nil, err
	}
	if err := validateOracle(config.Oracle); err != nil {
		return nil, err
	}

	return &config, nil
}

func setCommonDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("chains.source", ChainSourceFile)
	v.SetDefault("chains.path", "config/chains.json")
	v.SetDefault("oracle.threshold", 1)
	v.SetDefault("executor.max_retries", 5)
	v.SetDefault("executor.retry_initial_interval", "50ms")
}

// readConfig reads the config file, falling back to environment variables when there is none
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func validateChains(cfg ChainsConfig) error {
	switch cfg.Source {
	case ChainSourceFile:
		if cfg.Path == "" {
			return errors.New("chains.path is required when chains.source is file")
		}
	case ChainSourceDatabase:
	default:
		return fmt.Errorf("chains.source must be %q or %q, got %q", ChainSourceFile, ChainSourceDatabase, cfg.Source)
	}
	return nil
}

func validateOracle(cfg OracleConfig) error {
	if cfg.Threshold < 1 {
		return errors.New("oracle.threshold must be at least 1")
	}
	if len(cfg.Signers) > 0 && cfg.Threshold > len(cfg.Signers) {
		return fmt.Errorf("oracle.threshold %d exceeds the %d configured signers", cfg.Threshold, len(cfg.Signers))
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/api/, cmd/settlement-worker/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("SETTLEMENT_HUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.read_host",
		"database.read_port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.consumer_name",
		"nats.subject",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.ack_wait",
		"nats.max_deliver",
		"nats.results_stream_name",
		"nats.results_subject_prefix",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.cors_allowed_origins",
		// Rate limit
		"rate_limit.enabled",
		"rate_limit.requests_per_second",
		"rate_limit.burst",
		"rate_limit.redis_addr",
		"rate_limit.redis_password",
		"rate_limit.redis_db",
		"rate_limit.redis_key_prefix",
		"rate_limit.enable_local_fallback",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Worker
		"worker.pool_size",
		"worker.queue_size",
		"worker.metrics_addr",
		// Chains
		"chains.source",
		"chains.path",
		// Oracle
		"oracle.signers",
		"oracle.threshold",
		// Signer
		"signer.private_key",
		// Withdrawal
		"withdrawal.lock_ttl",
		// Executor
		"executor.max_retries",
		"executor.retry_initial_interval",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ReadDSN returns the read-replica database connection string.
// If ReadPort is not configured, it falls back to Port.
func (c *DatabaseConfig) ReadDSN() string {
	port := c.ReadPort
	if port == 0 {
		port = c.Port
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.ReadHost, port, c.User, c.Password, c.DBName, c.SSLMode)
}
