package config

import (
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBURL         string
	ServerPort    string
	SessionSecret string
	TokenSecret   string
	CookieMaxAge  int
	TemplatesGlob string
	LogLevel      slog.Level

	RedisAddr         string
	LoginRateCapacity int
	LoginRateRefill   time.Duration

	AdminLogin    string
	AdminPassword string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBURL:         os.Getenv("DB_URL"),
		ServerPort:    envStr("SERVER_PORT", "8080"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		TokenSecret:   os.Getenv("TOKEN_SECRET"),
		CookieMaxAge:  envInt("COOKIE_MAX_AGE", 86400),
		TemplatesGlob: envStr("TEMPLATES_GLOB", "web/templates/*.html"),
		LogLevel:      parseLevel(os.Getenv("LOG_LEVEL")),

		RedisAddr:         os.Getenv("REDIS_ADDR"),
		LoginRateCapacity: envInt("LOGIN_RATE_CAPACITY", 10),
		LoginRateRefill:   envDur("LOGIN_RATE_REFILL", 6*time.Second),

		AdminLogin:    envStr("ADMIN_LOGIN", "manager"),
		AdminPassword: envStr("ADMIN_PASSWORD", "Manager123!"),
	}

	if cfg.DBURL == "" {
		log.Fatal("DB_URL is not set")
	}
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is not set")
	}
	if cfg.TokenSecret == "" {
		cfg.TokenSecret = cfg.SessionSecret
	}
	if cfg.CookieMaxAge <= 0 {
		cfg.CookieMaxAge = 86400
	}

	return cfg
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
