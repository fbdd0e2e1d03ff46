package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	DataFile     string
	DownloadRoot string

	APIBaseURL string
	UserAgent  string

	HTTPTimeout time.Duration
	RetryMax    int

	RecentDays          int
	ArchiveMonthLimit   int
	ArchiveRecentMonths int
	PacingDelay         time.Duration

	RedisURL    string
	TemplateDir string
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		DataFile:            "classes.json",
		DownloadRoot:        ".",
		APIBaseURL:          "https://api.chess.com/pub",
		UserAgent:           "chess-coach-go/1.0",
		HTTPTimeout:         15 * time.Second,
		RetryMax:            3,
		RecentDays:          14,
		ArchiveMonthLimit:   18,
		ArchiveRecentMonths: 2,
		PacingDelay:         200 * time.Millisecond,
	}

	if v := strings.TrimSpace(os.Getenv("COACH_DATA_FILE")); v != "" {
		cfg.DataFile = v
	}
	if v := strings.TrimSpace(os.Getenv("COACH_DOWNLOAD_ROOT")); v != "" {
		cfg.DownloadRoot = v
	}
	if v := strings.TrimSpace(os.Getenv("COACH_API_BASE_URL")); v != "" {
		cfg.APIBaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(os.Getenv("COACH_USER_AGENT")); v != "" {
		cfg.UserAgent = v
	}
	if v := strings.TrimSpace(os.Getenv("COACH_HTTP_TIMEOUT")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.HTTPTimeout = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("COACH_RETRY_MAX")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RetryMax = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("COACH_RECENT_DAYS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RecentDays = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("COACH_MONTH_LOOKBACK")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ArchiveMonthLimit = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("COACH_ARCHIVE_RECENT_MONTHS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.ArchiveRecentMonths = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("COACH_PACING_MS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.PacingDelay = time.Duration(n) * time.Millisecond
		}
	}

	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.TemplateDir = strings.TrimSpace(os.Getenv("COACH_TEMPLATE_DIR"))

	if cfg.DataFile == "" {
		return nil, errors.New("COACH_DATA_FILE must not be empty")
	}
	if !strings.HasPrefix(cfg.APIBaseURL, "http://") && !strings.HasPrefix(cfg.APIBaseURL, "https://") {
		return nil, errors.New("COACH_API_BASE_URL must be an http(s) URL")
	}

	return cfg, nil
}
