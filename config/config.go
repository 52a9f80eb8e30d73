package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type WebServerConfig struct {
	Port            string `mapstructure:"port"`
	IP              string `mapstructure:"ip"`
	Scheme          string `mapstructure:"scheme"`
	BaseURL         string `mapstructure:"base_url"`
	ReadTimeout     int    `mapstructure:"read_timeout"`
	WriteTimeout    int    `mapstructure:"write_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	User             string `mapstructure:"user"`
	Password         string `mapstructure:"password"`
	Name             string `mapstructure:"name"`
	SSLMode          string `mapstructure:"ssl_mode"`
	OperationTimeout int    `mapstructure:"operation_timeout"`
}

// DSN builds the Postgres connection string from the individual fields.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	Address          string `mapstructure:"address"`
	Password         string `mapstructure:"password"`
	DB               int    `mapstructure:"db"`
	PoolSize         int    `mapstructure:"pool_size"`
	MinIdleConns     int    `mapstructure:"min_idle_conns"`
	OperationTimeout int    `mapstructure:"operation_timeout"`
}

type CacheConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	MaxSizeMB   int  `mapstructure:"max_size_mb"`
	TTLSeconds  int  `mapstructure:"ttl_seconds"`
	CounterSize int  `mapstructure:"counter_size"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type PrivacyConfig struct {
	IPSalt string `mapstructure:"ip_salt"`
}

type AnalyticsConfig struct {
	RecentWindow int `mapstructure:"recent_window"` // max scan events read per aggregation
}

type Config struct {
	WebServer WebServerConfig `mapstructure:"webserver"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Privacy   PrivacyConfig   `mapstructure:"privacy"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
}

func LoadConfig() (Config, error) {
	var config Config

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Enable environment variable overrides (SPARKLINK_PRIVACY_IP_SALT etc.)
	viper.SetEnvPrefix("SPARKLINK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Error reading config file: %v", err)
		return config, err
	}

	if err := viper.Unmarshal(&config); err != nil {
		log.Printf("Unable to decode into struct: %v", err)
		return config, err
	}

	return config, nil
}

func MustLoadConfig() Config {
	config, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	return config
}

func setDefaults() {
	// WebServer defaults
	viper.SetDefault("webserver.port", "8080")
	viper.SetDefault("webserver.ip", "127.0.0.1")
	viper.SetDefault("webserver.scheme", "http")
	viper.SetDefault("webserver.base_url", "")
	viper.SetDefault("webserver.read_timeout", 15)
	viper.SetDefault("webserver.write_timeout", 15)
	viper.SetDefault("webserver.shutdown_timeout", 30)

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.user", "creatorshelf")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.name", "creatorshelf")
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.operation_timeout", 5)

	// Redis defaults (L2 link-record cache)
	viper.SetDefault("redis.enabled", true)
	viper.SetDefault("redis.address", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.pool_size", 10)
	viper.SetDefault("redis.min_idle_conns", 5)
	viper.SetDefault("redis.operation_timeout", 5)

	// Cache defaults (L1 in-process)
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.max_size_mb", 100)
	viper.SetDefault("cache.ttl_seconds", 300)      // 5 minutes
	viper.SetDefault("cache.counter_size", 1000000) // 1M keys

	// RateLimit defaults
	viper.SetDefault("ratelimit.requests_per_second", 10.0)
	viper.SetDefault("ratelimit.burst", 20)

	// Privacy defaults
	viper.SetDefault("privacy.ip_salt", "creatorshelf-spark-salt")

	// Analytics defaults
	viper.SetDefault("analytics.recent_window", 500)
}
