package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"task_tracker/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	Version     string
	DatabaseURL string // empty selects the in-memory store
	JWTSecret   string
	JWTTTL      time.Duration
	CORSOrigins []string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	APIRateLimit   int
	APIRateWindow  time.Duration
	AuthRateLimit  int
	AuthRateWindow time.Duration

	LogLevel string
	LogJSON  bool

	// StatsLocation is the zone whose calendar day decides "due today".
	StatsLocation   *time.Location
	ShutdownTimeout time.Duration
}

// Load reads the config from env, after merging a local .env if present.
func Load() *Config {
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}

	origins := []string{"*"}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins = origins[:0]
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	statsLoc := time.UTC
	if tz := os.Getenv("STATS_TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			logger.Fatal("invalid STATS_TIMEZONE", "value", tz, "error", err)
		}
		statsLoc = loc
	}

	return &Config{
		AppPort:         port,
		Version:         version,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       jwtSecret,
		JWTTTL:          time.Duration(envInt("JWT_TTL_HOURS", 24)) * time.Hour,
		CORSOrigins:     origins,
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         envInt("REDIS_DB", 0),
		APIRateLimit:    envInt("API_RATE_LIMIT", 120),
		APIRateWindow:   time.Duration(envInt("API_RATE_WINDOW_SECONDS", 60)) * time.Second,
		AuthRateLimit:   envInt("AUTH_RATE_LIMIT", 10),
		AuthRateWindow:  time.Duration(envInt("AUTH_RATE_WINDOW_SECONDS", 60)) * time.Second,
		LogLevel:        os.Getenv("LOG_LEVEL"),
		LogJSON:         os.Getenv("LOG_JSON") == "true",
		StatsLocation:   statsLoc,
		ShutdownTimeout: time.Duration(envInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

// envInt returns the positive integer in key, or def when unset or invalid.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		logger.Warn("ignoring invalid env value", "key", key, "value", v)
		return def
	}
	return n
}
