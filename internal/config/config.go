package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI  string
	MongoDB   string
	RedisAddr string
	RedisPass string
	HTTPPort  string

	// Dashboard auth
	JWTSecret         string
	JWTTTL            time.Duration
	DashboardUsername string
	DashboardPassword string
	DashboardTeams    []string

	// Stats
	CacheTTL      time.Duration
	StatsTimezone string
	Partitions    int

	LogLevel  string
	LogFormat string
}

// Load reads .env (if present) and the process environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnv("MONGO_DB", "innsikt"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass: getEnv("REDIS_PASSWORD", ""),
		HTTPPort:  getEnv("PORT", "8080"),

		JWTSecret:         getEnv("JWT_SECRET", ""),
		JWTTTL:            getDuration("JWT_TTL", 12*time.Hour),
		DashboardUsername: getEnv("DASHBOARD_USERNAME", "admin"),
		DashboardPassword: getEnv("DASHBOARD_PASSWORD", ""),
		DashboardTeams:    getList("DASHBOARD_TEAMS", []string{"*"}),

		CacheTTL:      getDuration("CACHE_TTL", 5*time.Minute),
		StatsTimezone: getEnv("STATS_TIMEZONE", "Europe/Oslo"),
		Partitions:    getInt("STATS_PARTITIONS", 4),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing JWT_SECRET")
	}
	if cfg.DashboardPassword == "" {
		return nil, fmt.Errorf("missing DASHBOARD_PASSWORD")
	}
	if _, err := time.LoadLocation(cfg.StatsTimezone); err != nil {
		return nil, fmt.Errorf("invalid STATS_TIMEZONE %q: %w", cfg.StatsTimezone, err)
	}
	if cfg.Partitions < 1 {
		cfg.Partitions = 1
	}
	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
