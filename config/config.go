package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port            int
	WheelConfig     string // YAML wheel file; empty means the built-in wheel
	DataDir         string
	Results         string // "json", "postgres" or "none"
	Seed            uint64 // deterministic sessions when HasSeed
	HasSeed         bool
	LogLevel        string
	AllowedOrigins  []string
	SessionTTLHours int
}

func Load() *Config {
	port := 8081
	// Prefer PORT (Render, Fly.io, Railway, etc.) then WHEEL_PORT
	if p := os.Getenv("PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			port = v
		}
	} else if p := os.Getenv("WHEEL_PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			port = v
		}
	}
	dataDir := os.Getenv("WHEEL_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	results := strings.ToLower(os.Getenv("WHEEL_RESULTS"))
	if results == "" {
		results = "json"
		if os.Getenv("DATABASE_URL") != "" {
			results = "postgres"
		}
	}
	var seed uint64
	hasSeed := false
	if s := os.Getenv("WHEEL_SEED"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			seed, hasSeed = v, true
		}
	}
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	origins := []string{"*"}
	if o := os.Getenv("WHEEL_ALLOWED_ORIGINS"); o != "" {
		origins = nil
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				origins = append(origins, part)
			}
		}
	}
	ttl := 24
	if v, err := strconv.Atoi(os.Getenv("WHEEL_SESSION_TTL_HOURS")); err == nil && v > 0 {
		ttl = v
	}
	return &Config{
		Port:            port,
		WheelConfig:     os.Getenv("WHEEL_CONFIG"),
		DataDir:         dataDir,
		Results:         results,
		Seed:            seed,
		HasSeed:         hasSeed,
		LogLevel:        logLevel,
		AllowedOrigins:  origins,
		SessionTTLHours: ttl,
	}
}
