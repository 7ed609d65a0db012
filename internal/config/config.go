package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Log         LogConfig         `yaml:"log"`
	Auth        AuthConfig        `yaml:"auth"`
	Ordering    OrderingConfig    `yaml:"ordering"`
	Fulfillment FulfillmentConfig `yaml:"fulfillment"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	AutoMigrate     bool          `yaml:"auto_migrate"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Output     string `yaml:"output"`
	FilePath   string `yaml:"file_path"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
}

type AuthConfig struct {
	AdminUsername     string        `yaml:"admin_username"`
	AdminPasswordHash string        `yaml:"admin_password_hash"`
	JWTSecret         string        `yaml:"jwt_secret"`
	TokenTTL          time.Duration `yaml:"token_ttl"`
}

type OrderingConfig struct {
	MaxTableNumber    int           `yaml:"max_table_number"`
	LowStockThreshold int           `yaml:"low_stock_threshold"`
	PublicBaseURL     string        `yaml:"public_base_url"`
	SessionIdleTTL    time.Duration `yaml:"session_idle_ttl"`
	CheckoutTxTimeout time.Duration `yaml:"checkout_tx_timeout"`
	MaxRetryAttempts  int           `yaml:"max_retry_attempts"`
}

type FulfillmentConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "barorder")
	v.SetDefault("DB_PASSWORD", "secret")
	v.SetDefault("DB_NAME", "barorder")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("LOG_FILE_PATH", "logs/barorder.log")
	v.SetDefault("LOG_MAX_SIZE", 100)
	v.SetDefault("LOG_MAX_BACKUPS", 5)
	v.SetDefault("LOG_MAX_AGE", 30)
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TOKEN_TTL", "12h")
	v.SetDefault("MAX_TABLE_NUMBER", 50)
	v.SetDefault("LOW_STOCK_THRESHOLD", 10)
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:5173")
	v.SetDefault("SESSION_IDLE_TTL", "4h")
	v.SetDefault("CHECKOUT_TX_TIMEOUT", "5s")
	v.SetDefault("MAX_RETRY_ATTEMPTS", 3)
	v.SetDefault("FULFILLMENT_POLL_INTERVAL", "10s")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 20)

	durations := map[string]time.Duration{}
	for _, key := range []string{
		"DB_CONN_MAX_LIFETIME",
		"JWT_TOKEN_TTL",
		"SESSION_IDLE_TTL",
		"CHECKOUT_TX_TIMEOUT",
		"FULFILLMENT_POLL_INTERVAL",
	} {
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return nil, err
		}
		durations[key] = d
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: durations["DB_CONN_MAX_LIFETIME"],
			AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
		},
		Log: LogConfig{
			Level:      v.GetString("LOG_LEVEL"),
			Output:     v.GetString("LOG_OUTPUT"),
			FilePath:   v.GetString("LOG_FILE_PATH"),
			MaxSize:    v.GetInt("LOG_MAX_SIZE"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
			MaxAge:     v.GetInt("LOG_MAX_AGE"),
		},
		Auth: AuthConfig{
			AdminUsername:     v.GetString("ADMIN_USERNAME"),
			AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
			JWTSecret:         v.GetString("JWT_SECRET"),
			TokenTTL:          durations["JWT_TOKEN_TTL"],
		},
		Ordering: OrderingConfig{
			MaxTableNumber:    v.GetInt("MAX_TABLE_NUMBER"),
			LowStockThreshold: v.GetInt("LOW_STOCK_THRESHOLD"),
			PublicBaseURL:     v.GetString("PUBLIC_BASE_URL"),
			SessionIdleTTL:    durations["SESSION_IDLE_TTL"],
			CheckoutTxTimeout: durations["CHECKOUT_TX_TIMEOUT"],
			MaxRetryAttempts:  v.GetInt("MAX_RETRY_ATTEMPTS"),
		},
		Fulfillment: FulfillmentConfig{
			PollInterval: durations["FULFILLMENT_POLL_INTERVAL"],
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	return cfg, nil
}
