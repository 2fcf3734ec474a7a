package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Defaults for the inventory alert thresholds. The low-stock threshold is the
// single canonical cutoff used by both alerts and report views.
const (
	DefaultLowStockThreshold = 20
	DefaultExpiryWindowDays  = 30
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`

	JWT struct {
		Secret          string `mapstructure:"secret"`
		ExpirationHours int    `mapstructure:"expiration_hours"`
		Issuer          string `mapstructure:"issuer"`
	} `mapstructure:"jwt"`

	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	Inventory struct {
		LowStockThreshold  float64 `mapstructure:"low_stock_threshold"`
		ExpiryWindowDays   int     `mapstructure:"expiry_window_days"`
		AlertFeedIntervalS int     `mapstructure:"alert_feed_interval_seconds"`
	} `mapstructure:"inventory"`

	Archive struct {
		Enabled   bool   `mapstructure:"enabled"`
		Endpoint  string `mapstructure:"endpoint"`
		Region    string `mapstructure:"region"`
		Bucket    string `mapstructure:"bucket"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
		Prefix    string `mapstructure:"prefix"`
	} `mapstructure:"archive"`
}

// DSN returns the PostgreSQL connection string
func (c *Config) DSN() string {
	return "postgres://" + c.Database.User + ":" + c.Database.Password + "@" +
		c.Database.Host + ":" + strconv.Itoa(c.Database.Port) + "/" + c.Database.Name
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	v.AutomaticEnv()
	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	applyEnv(&cfg)

	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET not found in environment or config")
	}
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("server.cors_allowed_headers", []string{"Authorization", "Content-Type"})
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("jwt.issuer", "chem-backend")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "chem_db")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("inventory.low_stock_threshold", DefaultLowStockThreshold)
	v.SetDefault("inventory.expiry_window_days", DefaultExpiryWindowDays)
	v.SetDefault("inventory.alert_feed_interval_seconds", 60)
	v.SetDefault("archive.region", "auto")
	v.SetDefault("archive.prefix", "reports/")
}

// applyEnv lets plain environment variables win over the config file
func applyEnv(cfg *Config) {
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	if cfg.JWT.Secret == "" || cfg.JWT.Secret == "${JWT_SECRET}" {
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	}

	// K8s sets REDIS_SERVICE_HOST and REDIS_SERVICE_PORT for services
	if host := os.Getenv("REDIS_SERVICE_HOST"); host != "" {
		port := os.Getenv("REDIS_SERVICE_PORT")
		if port == "" {
			port = "6379"
		}
		cfg.Redis.Addr = host + ":" + port
	}
	if pass := os.Getenv("REDIS_PASSWORD"); pass != "" {
		cfg.Redis.Password = pass
	}

	if threshold := os.Getenv("LOW_STOCK_THRESHOLD"); threshold != "" {
		if n, err := strconv.ParseFloat(threshold, 64); err == nil && n > 0 {
			cfg.Inventory.LowStockThreshold = n
		}
	}
	if cfg.Inventory.LowStockThreshold <= 0 {
		cfg.Inventory.LowStockThreshold = DefaultLowStockThreshold
	}
	if cfg.Inventory.ExpiryWindowDays <= 0 {
		cfg.Inventory.ExpiryWindowDays = DefaultExpiryWindowDays
	}

	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		cfg.Archive.Bucket = bucket
		cfg.Archive.Enabled = true
	}
	if endpoint := os.Getenv("S3_ENDPOINT"); endpoint != "" {
		cfg.Archive.Endpoint = endpoint
	}
	if key := os.Getenv("S3_ACCESS_KEY"); key != "" {
		cfg.Archive.AccessKey = key
	}
	if secret := os.Getenv("S3_SECRET_KEY"); secret != "" {
		cfg.Archive.SecretKey = secret
	}
}
