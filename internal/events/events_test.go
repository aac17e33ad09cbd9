package events

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"time"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/jpsloader/internal/ctxlog"
	"github.com/vk/jpsloader/internal/loader"
	"github.com/vk/jpsloader/internal/model"
)

type emitted struct {
	event   string
	payload map[string]any
}

func TestSocketIOPublisher_Payloads(t *testing.T) {
	var got []emitted
	closed := 0
	p := newSocketIOPublisher(
		func(event string, payload map[string]any) { got = append(got, emitted{event, payload}) },
		func() { closed++ },
	)
	ctx := context.Background()

	m := model.NewModule("core", model.PlainModuleType, nil)
	m.FilePath = "/p/core/core.iml"
	p.StageChanged(ctx, loader.StageEvent{LoadID: "id-1", ProjectPath: "/p", Stage: loader.ModulesLoading})
	p.ModuleLoaded(ctx, loader.ModuleEvent{LoadID: "id-1", Index: 0, Total: 2, Module: m})
	p.StageChanged(ctx, loader.StageEvent{LoadID: "id-1", ProjectPath: "/p", Stage: loader.Failed, Err: errors.New("boom")})

	require.Len(t, got, 3)
	assert.Equal(t, StageEventName, got[0].event)
	assert.Equal(t, "ModulesLoading", got[0].payload["stage"])
	assert.NotContains(t, got[0].payload, "error")

	assert.Equal(t, ModuleEventName, got[1].event)
	assert.Equal(t, map[string]any{
		"load_id": "id-1",
		"index":   0,
		"total":   2,
		"name":    "core",
		"type":    "JAVA_MODULE",
		"path":    "/p/core/core.iml",
	}, got[1].payload)

	assert.Equal(t, "boom", got[2].payload["error"])

	p.Close()
	p.Close()
	assert.Equal(t, 1, closed)
	p.StageChanged(ctx, loader.StageEvent{Stage: loader.Complete})
	assert.Len(t, got, 3)
}

func TestDialSocketIO_InvalidURL(t *testing.T) {
	testCases := []struct {
		name string
		url  string
	}{
		{name: "unparseable", url: "http://[::1"},
		{name: "no scheme", url: "localhost:3000"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := DialSocketIO(context.Background(), SocketIOOptions{URL: tc.url})
			assert.Nil(t, p)
			assert.Error(t, err)
		})
	}
}

type countingListener struct{ stages, modules int }

func (c *countingListener) StageChanged(context.Context, loader.StageEvent)  { c.stages++ }
func (c *countingListener) ModuleLoaded(context.Context, loader.ModuleEvent) { c.modules++ }

func TestMulti_FansOut(t *testing.T) {
	a, b := &countingListener{}, &countingListener{}
	multi := Multi{a, b}

	multi.StageChanged(context.Background(), loader.StageEvent{Stage: loader.RootLoading})
	multi.ModuleLoaded(context.Background(), loader.ModuleEvent{Module: model.NewModule("x", model.PlainModuleType, nil)})

	assert.Equal(t, 1, a.stages)
	assert.Equal(t, 1, b.modules)
}

func TestLogListener(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	LogListener{}.StageChanged(ctx, loader.StageEvent{Stage: loader.LibrariesLoading})
	LogListener{}.ModuleLoaded(ctx, loader.ModuleEvent{Index: 3, Total: 5, Module: model.NewModule("web", "WEB_MODULE", nil)})
	LogListener{}.StageChanged(ctx, loader.StageEvent{Stage: loader.Failed, Err: errors.New("disk on fire")})

	out := buf.String()
	assert.Contains(t, out, "stage=LibrariesLoading")
	assert.Contains(t, out, "module=web")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, `error="disk on fire"`)
}

func TestSignalConnect_KeepsFirstOutcomeWithoutBlocking(t *testing.T) {
	ch := make(chan error, 1)
	refused := errors.New("connection refused")

	done := make(chan struct{})
	go func() {
		signalConnect(ch, refused)
		// A reconnect after the failure fires connect as well.
		signalConnect(ch, nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("signalConnect blocked on a full channel")
	}
	assert.Equal(t, refused, <-ch)
	assert.Empty(t, ch)
}
