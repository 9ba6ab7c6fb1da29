package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures process-level configuration so main stays lean.
type Config struct {
	Addr string

	JWTSigningKey string
	JWTIssuer     string
	SessionTTL    time.Duration

	AdminEmail    string
	AdminPassword string

	// Login lockout: LoginMaxFailures consecutive failures lock the email
	// out for LoginLockout.
	LoginMaxFailures int
	LoginLockout     time.Duration

	// RedisURL selects the Redis backend when set; PostgresDSN selects
	// Postgres. With neither set the service runs on the in-memory backend.
	RedisURL    string
	PostgresDSN string

	// SimulatedLatency pads every storage-facing call with a random delay in
	// [LatencyMin, LatencyMax] to mimic a slow network.
	SimulatedLatency bool
	LatencyMin       time.Duration
	LatencyMax       time.Duration
}

// FromEnv builds a Config from environment variables with development
// defaults.
func FromEnv() Config {
	cfg := Config{
		Addr:             getenv("ELECTION_ADDR", ":8080"),
		JWTSigningKey:    getenv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:        getenv("JWT_ISSUER", "election-service"),
		SessionTTL:       getduration("SESSION_TTL", 24*time.Hour),
		AdminEmail:       getenv("ADMIN_EMAIL", "admin@election.gov"),
		AdminPassword:    getenv("ADMIN_PASSWORD", "Admin@1234"),
		LoginMaxFailures: getint("LOGIN_MAX_FAILURES", 5),
		LoginLockout:     getduration("LOGIN_LOCKOUT", 15*time.Minute),
		RedisURL:         os.Getenv("REDIS_URL"),
		PostgresDSN:      os.Getenv("DATABASE_URL"),
		LatencyMin:       getduration("SIMULATED_LATENCY_MIN", 200*time.Millisecond),
		LatencyMax:       getduration("SIMULATED_LATENCY_MAX", 800*time.Millisecond),
	}
	cfg.SimulatedLatency, _ = strconv.ParseBool(os.Getenv("SIMULATED_LATENCY"))
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
