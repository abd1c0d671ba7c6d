package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports observability events as debug log lines. It is installed
// by --verbose.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnProbeStart(_ context.Context, method string) {
	h.logger.Debug("probe started", "method", method)
}

func (h *logHooks) OnProbeComplete(_ context.Context, method string, monitors int, d time.Duration, err error) {
	h.logger.Debug("probe finished", "method", method, "monitors", monitors, "duration", d, "err", err)
}

func (h *logHooks) OnApplyStart(_ context.Context, runID string, groups int) {
	h.logger.Debug("apply started", "run", runID, "groups", groups)
}

func (h *logHooks) OnGroupComplete(_ context.Context, runID string, index, exitCode int, d time.Duration, err error) {
	h.logger.Debug("group finished", "run", runID, "group", index+1, "exit", exitCode, "duration", d, "err", err)
}

func (h *logHooks) OnApplyComplete(_ context.Context, runID string, failed int, d time.Duration) {
	h.logger.Debug("apply finished", "run", runID, "failed", failed, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "size", size)
}
