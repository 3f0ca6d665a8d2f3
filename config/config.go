package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	Env           string
	LogLevel      string
	DBUrl         string
	JWTSecret     string
	AllowedOrigin string
	FrontendURL   string

	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration

	// DB Config
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration

	// KV store (cart snapshots, local wishlist, wizard state, visit markers)
	KVBackend     string // "memory" or "redis"
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Object storage (avatars)
	StorageAccountID       string
	StorageAccessKeyID     string
	StorageAccessKeySecret string
	StorageBucketName      string
	StoragePublicURL       string
	StorageUploadTimeout   time.Duration
	MaxUploadSizeMB        int64

	// Cache
	CacheProductTTL time.Duration
	CacheCatalogTTL time.Duration

	// Business rules
	ShippingFlatFee string // decimal string, e.g. "15.00"
	MaxCartQuantity int
}

func LoadConfig() *Config {
	// A specific config file can be requested via env var; otherwise fall
	// back to .env if present and rely on system env vars in prod.
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DBUrl:         getEnv("DB_DSN", ""),
		JWTSecret:     getEnv("JWT_SECRET", "default_secret_CHANGE_ME"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:3000"),

		AccessTokenExpiry:  getDurationEnv("ACCESS_TOKEN_EXPIRY", time.Hour*24),
		RefreshTokenExpiry: getDurationEnv("REFRESH_TOKEN_EXPIRY", time.Hour*24*7),

		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 50),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 10),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", time.Minute*15),

		KVBackend:     getEnv("KV_BACKEND", "memory"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),

		StorageAccountID:       getEnv("STORAGE_ACCOUNT_ID", ""),
		StorageAccessKeyID:     getEnv("STORAGE_ACCESS_KEY_ID", ""),
		StorageAccessKeySecret: getEnv("STORAGE_ACCESS_KEY_SECRET", ""),
		StorageBucketName:      getEnv("STORAGE_BUCKET_NAME", ""),
		StoragePublicURL:       getEnv("STORAGE_PUBLIC_URL", ""),
		StorageUploadTimeout:   getDurationEnv("STORAGE_UPLOAD_TIMEOUT", 30*time.Second),
		MaxUploadSizeMB:        getInt64Env("MAX_UPLOAD_SIZE_MB", 5),

		CacheProductTTL: getDurationEnv("CACHE_PRODUCT_TTL", 10*time.Minute),
		CacheCatalogTTL: getDurationEnv("CACHE_CATALOG_TTL", 5*time.Minute),

		ShippingFlatFee: getEnv("SHIPPING_FLAT_FEE", "15.00"),
		MaxCartQuantity: getIntEnv("MAX_CART_QUANTITY", 100),
	}

	cfg.Validate()
	return cfg
}

func (c *Config) Validate() {
	if c.DBUrl == "" {
		log.Fatal("CRITICAL: DB_DSN environment variable is required")
	}
	if c.JWTSecret == "default_secret_CHANGE_ME" {
		log.Println("WARNING: Using default JWT secret. Setting up for failure in production.")
	}
	if c.KVBackend != "memory" && c.KVBackend != "redis" {
		log.Fatalf("CRITICAL: KV_BACKEND must be 'memory' or 'redis', got %q", c.KVBackend)
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}

func getInt64Env(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
		log.Printf("Invalid int64 for %s, using fallback", key)
	}
	return fallback
}
