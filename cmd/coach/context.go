package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/kapu/chess-coach-go/internal/chesscom"
	"github.com/kapu/chess-coach-go/internal/config"
	"github.com/kapu/chess-coach-go/internal/msgcat"
	"github.com/kapu/chess-coach-go/internal/obslog"
	"github.com/kapu/chess-coach-go/internal/roster"
	"go.uber.org/zap"
)

type commandContext struct {
	dataFlag *string

	configOnce sync.Once
	config     *config.AppConfig
	configErr  error
}

func newCommandContext(dataFlag *string) *commandContext {
	return &commandContext{dataFlag: dataFlag}
}

func (c *commandContext) ensureConfig() (*config.AppConfig, error) {
	c.configOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			c.configErr = err
			return
		}
		if c.dataFlag != nil && strings.TrimSpace(*c.dataFlag) != "" {
			cfg.DataFile = strings.TrimSpace(*c.dataFlag)
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) store() (*roster.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return roster.NewStore(cfg.DataFile), nil
}

// loadCurrent loads the roster and returns the selected class with its name.
func (c *commandContext) loadCurrent() (*roster.Store, *roster.File, string, *roster.Class, error) {
	st, err := c.store()
	if err != nil {
		return nil, nil, "", nil, err
	}
	f, err := st.Load()
	if err != nil {
		return nil, nil, "", nil, err
	}
	cls, err := f.Current()
	if err != nil {
		return nil, nil, "", nil, fmt.Errorf("select a class first (coach class use <name>): %w", err)
	}
	return st, f, f.CurrentClass, cls, nil
}

func (c *commandContext) catalog() (*msgcat.Catalog, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return msgcat.New(cfg.TemplateDir)
}

// archiveClient builds the API client; the cache is shared in redis when
// REDIS_URL is set, in-process otherwise.
func (c *commandContext) archiveClient() (*chesscom.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	opts := []chesscom.Option{
		chesscom.WithTimeout(cfg.HTTPTimeout),
		chesscom.WithRetry(cfg.RetryMax),
		chesscom.WithUserAgent(cfg.UserAgent),
	}
	if cfg.RedisURL != "" {
		cache, err := chesscom.NewRedisCacheURL(cfg.RedisURL)
		if err != nil {
			obslog.L().Warn("redis cache unavailable, using memory cache", zap.Error(err))
		} else {
			opts = append(opts, chesscom.WithCache(cache))
		}
	}
	return chesscom.NewClient(cfg.APIBaseURL, opts...), nil
}

// readTextArg reads pairing or roster text from the file named by args[0],
// or from stdin when no argument is given.
func readTextArg(args []string) (string, error) {
	if len(args) == 0 {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(b), nil
}
