package redis

import "time"

// Config holds Redis connection parameters for the translation store and the
// shared view cache. Field tags name the environment variables the CLI binds.
type Config struct {
	// redis:// or rediss:// (TLS) URL
	URL string `env:"LINGO_REDIS_URL,required"`

	PoolSize      int           `env:"LINGO_REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns  int           `env:"LINGO_REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	MaxIdleTime   time.Duration `env:"LINGO_REDIS_MAX_IDLE_TIME" envDefault:"10m"`
	MaxActiveTime time.Duration `env:"LINGO_REDIS_MAX_ACTIVE_TIME" envDefault:"30m"`

	// Startup retries. Attempt n waits n*RetryInterval before the next one.
	RetryAttempts int           `env:"LINGO_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"LINGO_REDIS_RETRY_INTERVAL" envDefault:"5s"`

	ReadTimeout  time.Duration `env:"LINGO_REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"LINGO_REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	DialTimeout  time.Duration `env:"LINGO_REDIS_DIAL_TIMEOUT" envDefault:"5s"`
}

// DefaultConfig returns the envDefault values for url.
func DefaultConfig(url string) Config {
	return Config{
		URL:           url,
		PoolSize:      10,
		MinIdleConns:  2,
		MaxIdleTime:   10 * time.Minute,
		MaxActiveTime: 30 * time.Minute,
		RetryAttempts: 3,
		RetryInterval: 5 * time.Second,
		ReadTimeout:   3 * time.Second,
		WriteTimeout:  3 * time.Second,
		DialTimeout:   5 * time.Second,
	}
}
