package main

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/dmitrymomot/cgmportal/internal/portal"
	"github.com/dmitrymomot/cgmportal/pkg/config"
	"github.com/dmitrymomot/cgmportal/pkg/logger"
	"github.com/dmitrymomot/cgmportal/pkg/requestid"
	"github.com/dmitrymomot/cgmportal/pkg/session"
)

type commandContext struct {
	envFiles *[]string

	configOnce sync.Once
	config     portal.Config
	configErr  error
}

func newCommandContext(envFiles *[]string) *commandContext {
	return &commandContext{envFiles: envFiles}
}

func (c *commandContext) ensureConfig() (portal.Config, error) {
	c.configOnce.Do(func() {
		var files []string
		if c.envFiles != nil {
			files = *c.envFiles
		}
		if err := config.LoadEnvFiles(files...); err != nil {
			c.configErr = err
			return
		}
		c.configErr = config.Load(&c.config)
	})
	return c.config, c.configErr
}

// newLogger builds the process logger. Request and session ids are added to
// every record logged with a request context.
func newLogger(cfg portal.Config, out io.Writer) *slog.Logger {
	if out == nil {
		out = os.Stdout
	}
	opts := []logger.Option{
		logger.WithEnvironment(cfg.AppEnv, cfg.AppName),
		logger.WithOutput(out),
		logger.WithContextExtractors(requestid.LoggerExtractor(), session.LoggerExtractor()),
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevelName(cfg.LogLevel))
	}
	return logger.New(opts...)
}
