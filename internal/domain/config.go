package domain

import "time"

// Config is the main application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// ServerConfig is the HTTP server configuration.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// StoreConfig configures the expiring session store.
type StoreConfig struct {
	// Backend selects "redis" or "memory".
	Backend  string `mapstructure:"backend"`
	RedisURL string `mapstructure:"redis_url"`

	// SessionTTL is refreshed on every session mutation.
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	// ResumeTokenTTL bounds pause/resume hand-off, independent of SessionTTL.
	ResumeTokenTTL time.Duration `mapstructure:"resume_token_ttl"`
	// ResultsTTLMultiplier extends cached completed results beyond SessionTTL.
	ResultsTTLMultiplier int `mapstructure:"results_ttl_multiplier"`

	PoolSize    int           `mapstructure:"pool_size"`
	PoolTimeout time.Duration `mapstructure:"pool_timeout"`
	MaxRetries  int           `mapstructure:"max_retries"`

	BreakerEnabled bool `mapstructure:"breaker_enabled"`
}

// ResultsTTL derives the completed-results cache lifetime.
func (c StoreConfig) ResultsTTL() time.Duration {
	mult := c.ResultsTTLMultiplier
	if mult <= 0 {
		mult = 7
	}
	return c.SessionTTL * time.Duration(mult)
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RateLimitConfig configures the per-client API rate limiter.
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}
