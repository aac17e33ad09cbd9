package events

import (
	"context"

	"github.com/vk/jpsloader/internal/ctxlog"
	"github.com/vk/jpsloader/internal/loader"
)

// LogListener writes progress to the logger carried by the load context.
type LogListener struct{}

// StageChanged implements loader.ProgressListener.
func (LogListener) StageChanged(ctx context.Context, ev loader.StageEvent) {
	logger := ctxlog.FromContext(ctx)
	if ev.Stage == loader.Failed {
		logger.Warn("Project load failed.", "stage", ev.Stage, "error", ev.Err)
		return
	}
	logger.Info("Project load stage.", "stage", ev.Stage)
}

// ModuleLoaded implements loader.ProgressListener.
func (LogListener) ModuleLoaded(ctx context.Context, ev loader.ModuleEvent) {
	ctxlog.FromContext(ctx).Debug("Module attached.",
		"index", ev.Index,
		"total", ev.Total,
		"module", ev.Module.Name,
		"type", ev.Module.Type,
	)
}

// Multi fans every event out to each listener in order.
type Multi []loader.ProgressListener

// StageChanged implements loader.ProgressListener.
func (m Multi) StageChanged(ctx context.Context, ev loader.StageEvent) {
	for _, l := range m {
		l.StageChanged(ctx, ev)
	}
}

// ModuleLoaded implements loader.ProgressListener.
func (m Multi) ModuleLoaded(ctx context.Context, ev loader.ModuleEvent) {
	for _, l := range m {
		l.ModuleLoaded(ctx, ev)
	}
}
