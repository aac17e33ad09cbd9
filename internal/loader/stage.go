package loader

import (
	"context"

	"github.com/vk/jpsloader/internal/ctxlog"
	"github.com/vk/jpsloader/internal/model"
)

// Stage is the progress of a single project load.
type Stage int

const (
	NotStarted Stage = iota
	RootLoading
	ModulesLoading
	LibrariesLoading
	ArtifactsLoading
	Complete
	Failed
)

var stageNames = [...]string{
	NotStarted:       "NotStarted",
	RootLoading:      "RootLoading",
	ModulesLoading:   "ModulesLoading",
	LibrariesLoading: "LibrariesLoading",
	ArtifactsLoading: "ArtifactsLoading",
	Complete:         "Complete",
	Failed:           "Failed",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "Unknown"
	}
	return stageNames[s]
}

// StageEvent is reported on every stage transition. Err is set for Failed.
type StageEvent struct {
	LoadID      string
	ProjectPath string
	Stage       Stage
	Err         error
}

// ModuleEvent is reported when a module is attached to the project, which
// happens in declared order.
type ModuleEvent struct {
	LoadID string
	Index  int
	Total  int
	Module *model.Module
}

// ProgressListener observes project loads. Calls for one load are made from
// the goroutine running LoadProject, in order.
type ProgressListener interface {
	StageChanged(ctx context.Context, ev StageEvent)
	ModuleLoaded(ctx context.Context, ev ModuleEvent)
}

type nopListener struct{}

func (nopListener) StageChanged(context.Context, StageEvent)  {}
func (nopListener) ModuleLoaded(context.Context, ModuleEvent) {}

// stageTracker drives the stage machine of one load.
type stageTracker struct {
	listener    ProgressListener
	loadID      string
	projectPath string
	current     Stage
}

func (t *stageTracker) enter(ctx context.Context, s Stage) {
	ctxlog.FromContext(ctx).Debug("Load stage changed.", "from", t.current, "to", s)
	t.current = s
	t.listener.StageChanged(ctx, StageEvent{LoadID: t.loadID, ProjectPath: t.projectPath, Stage: s})
}

func (t *stageTracker) fail(ctx context.Context, err error) {
	ctxlog.FromContext(ctx).Debug("Load stage changed.", "from", t.current, "to", Failed, "error", err)
	t.current = Failed
	t.listener.StageChanged(ctx, StageEvent{LoadID: t.loadID, ProjectPath: t.projectPath, Stage: Failed, Err: err})
}
