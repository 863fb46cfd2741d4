package config

import (
	"os"
	"strconv"

	"go-jobboard-backend/pkg/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	FrontendURL string

	JWTSecret string
	JWKSUrl   string

	S3Region     string
	S3Bucket     string
	S3AccessKey  string
	S3SecretKey  string
	S3Endpoint   string
	CVUrlTTLMins int

	RedisURL      string
	RedisPassword string

	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	UploadsPerMinute         int
	UploadsPerDay            int

	JobsPerPage int
}

func LoadConfig() *Config {
	// .env is for local development; in deployment the environment is the
	// source of truth.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWKSUrl:   getEnv("JWKS_URL", ""),

		S3Region:     getEnv("S3_REGION", "ap-southeast-1"),
		S3Bucket:     getEnv("S3_BUCKET", ""),
		S3AccessKey:  getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:  getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:   getEnv("S3_ENDPOINT", ""),
		CVUrlTTLMins: getEnvInt("CV_URL_TTL_MINUTES", 15),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 300),
		UploadsPerMinute:         getEnvInt("UPLOADS_PER_MINUTE", 10),
		UploadsPerDay:            getEnvInt("UPLOADS_PER_DAY", 50),

		JobsPerPage: getEnvInt("JOBS_PER_PAGE", 9),
	}

	if cfg.DBUrl == "" {
		logger.Log.Warn("DATABASE_URL is not set")
	}
	if cfg.S3Bucket == "" {
		logger.Log.Warn("S3_BUCKET is not set; CV storage is disabled")
	}
	if cfg.RedisURL == "" {
		logger.Log.Warn("REDIS_URL is not set; rate limiting falls back to in-memory counters")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Log.Warn("invalid integer in environment", "key", key, "value", v)
		return fallback
	}
	return n
}
