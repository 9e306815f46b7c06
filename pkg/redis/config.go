package redis

import "time"

// Config holds the connection settings. An empty ConnectionURL means the
// portal keeps rate limits in process.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"` // redis://:password@localhost:6379/0
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"cgmportal:"`
}

// Enabled reports whether Redis is configured.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
