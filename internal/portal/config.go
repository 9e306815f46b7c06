package portal

import (
	"time"

	"github.com/dmitrymomot/cgmportal/pkg/file"
	"github.com/dmitrymomot/cgmportal/pkg/httpserver"
	"github.com/dmitrymomot/cgmportal/pkg/pg"
	"github.com/dmitrymomot/cgmportal/pkg/ratelimit"
	"github.com/dmitrymomot/cgmportal/pkg/redis"
	"github.com/dmitrymomot/cgmportal/pkg/session"
)

// Config is the complete application configuration, read from the
// environment by config.Load.
type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"cgmportal"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"`

	// PublicURL is encoded in the phone QR code. Derived from the request
	// host when empty.
	PublicURL string `env:"PUBLIC_URL"`

	// TargetsFile replaces the built-in target range table when set
	TargetsFile string `env:"TARGETS_FILE"`

	MaxSessions   int `env:"PORTAL_MAX_SESSIONS" envDefault:"1000"`
	EventsBuffer  int `env:"PORTAL_EVENTS_BUFFER" envDefault:"32"`
	RecentUploads int `env:"PORTAL_RECENT_UPLOADS" envDefault:"5"`

	HTTP       httpserver.Config
	Session    session.Config
	Storage    file.Config
	UploadRate ratelimit.Config
	Postgres   pg.Config
	Redis      redis.Config
}

// withDefaults fills zero values so a Config literal in tests is usable.
func (c Config) withDefaults() Config {
	if c.AppName == "" {
		c.AppName = "cgmportal"
	}
	if c.MaxSessions <= 0 {
		c.MaxSessions = 1000
	}
	if c.EventsBuffer <= 0 {
		c.EventsBuffer = 32
	}
	if c.RecentUploads <= 0 {
		c.RecentUploads = 5
	}
	if c.Session.CookieName == "" {
		c.Session = session.DefaultConfig()
	}
	if c.Storage.MaxBytes <= 0 {
		c.Storage.MaxBytes = 20 << 20
	}
	if c.UploadRate.Capacity <= 0 {
		c.UploadRate = ratelimit.Config{Capacity: 10, RefillRate: 1, RefillInterval: time.Minute}
	}
	if len(c.Storage.AllowedExtensions) == 0 {
		c.Storage.AllowedExtensions = file.DefaultExtensions
	}
	return c
}
