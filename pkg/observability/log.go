package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level, and failures at
// warn level. It implements all hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger.WithPrefix("events")}
}

// Register installs h for every event category.
func (h *LogHooks) Register() {
	SetCheckHooks(h)
	SetStoreHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnCheckStart(_ context.Context, slug string, force bool) {
	h.logger.Debug("check started", "slug", slug, "force", force)
}

func (h *LogHooks) OnCheckComplete(_ context.Context, slug, outcome string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("check failed", "slug", slug, "duration", d, "err", err)
		return
	}
	h.logger.Debug("check finished", "slug", slug, "outcome", outcome, "duration", d)
}

func (h *LogHooks) OnRateLimited(_ context.Context, slug string, reset time.Time) {
	h.logger.Warn("rate limited", "slug", slug, "reset", reset)
}

func (h *LogHooks) OnStoreLoad(_ context.Context, location string, records int, err error) {
	if err != nil {
		h.logger.Warn("store load failed", "location", location, "err", err)
		return
	}
	h.logger.Debug("store loaded", "location", location, "records", records)
}

func (h *LogHooks) OnStoreSave(_ context.Context, location string, records int, err error) {
	if err != nil {
		h.logger.Warn("store save failed", "location", location, "err", err)
		return
	}
	h.logger.Debug("store saved", "location", location, "records", records)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("request failed", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ CheckHooks = (*LogHooks)(nil)
	_ StoreHooks = (*LogHooks)(nil)
	_ HTTPHooks  = (*LogHooks)(nil)
)
