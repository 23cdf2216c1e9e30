package models

import "time"

// Config holds all configuration for the application
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	NSQ      NSQConfig
	JWT      JWTConfig
	Location LocationConfig
	Chat     ChatConfig
}

// AppConfig holds application-level configuration
type AppConfig struct {
	Name        string
	Environment string
	Version     string
	Debug       bool
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL string
}

// NSQConfig holds NSQ configuration
type NSQConfig struct {
	Address       string
	ActivityTopic string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret     string
	Expiration int // minutes
	Issuer     string
}

// LocationConfig holds location tracking configuration.
// PublishInterval is the minimum wall-clock gap between accepted
// location writes from one driver; the sensor may fire far more often.
type LocationConfig struct {
	PublishInterval time.Duration
	SensorTimeout   time.Duration
	StaleAfter      time.Duration
}

// ChatConfig holds chat configuration
type ChatConfig struct {
	HistoryLimit int
}
