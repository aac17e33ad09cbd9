package events

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/vk/jpsloader/internal/ctxlog"
	"github.com/vk/jpsloader/internal/loader"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Event names emitted by SocketIOPublisher.
const (
	StageEventName  = "load_stage"
	ModuleEventName = "module_loaded"
)

const defaultConnectTimeout = 10 * time.Second

// SocketIOOptions configures DialSocketIO.
type SocketIOOptions struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration
}

// SocketIOPublisher emits load progress to a socket.io endpoint.
type SocketIOPublisher struct {
	mu     sync.Mutex
	emit   func(event string, payload map[string]any)
	close  func()
	closed bool
}

// DialSocketIO connects to opts.URL and returns a publisher bound to the
// connection. Callers treat an error as "no publisher", never as fatal.
func DialSocketIO(ctx context.Context, opts SocketIOOptions) (*SocketIOPublisher, error) {
	logger := ctxlog.FromContext(ctx).With("events_url", opts.URL)

	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse events URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("events URL %q needs a scheme and host", opts.URL)
	}

	sopts := socket.DefaultOptions()
	sopts.SetPath(parsedURL.Path)
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sopts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sopts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, sopts)
	io := manager.Socket(opts.Namespace, sopts)

	connectChan := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Connected to events endpoint.", "sid", io.Id())
		signalConnect(connectChan, nil)
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		signalConnect(connectChan, err)
	})
	io.Connect()

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", timeout)
	}

	return newSocketIOPublisher(
		func(event string, payload map[string]any) { io.Emit(event, payload) },
		func() { io.Disconnect() },
	), nil
}

// signalConnect reports the first connection outcome. Later outcomes, such
// as a connect after a reconnect, are dropped so the client's event loop
// never blocks on a channel nobody reads.
func signalConnect(ch chan<- error, err error) {
	select {
	case ch <- err:
	default:
	}
}

func newSocketIOPublisher(emit func(string, map[string]any), closeFn func()) *SocketIOPublisher {
	return &SocketIOPublisher{emit: emit, close: closeFn}
}

// StageChanged implements loader.ProgressListener.
func (p *SocketIOPublisher) StageChanged(_ context.Context, ev loader.StageEvent) {
	payload := map[string]any{
		"load_id":      ev.LoadID,
		"project_path": ev.ProjectPath,
		"stage":        ev.Stage.String(),
	}
	if ev.Err != nil {
		payload["error"] = ev.Err.Error()
	}
	p.send(StageEventName, payload)
}

// ModuleLoaded implements loader.ProgressListener.
func (p *SocketIOPublisher) ModuleLoaded(_ context.Context, ev loader.ModuleEvent) {
	p.send(ModuleEventName, map[string]any{
		"load_id": ev.LoadID,
		"index":   ev.Index,
		"total":   ev.Total,
		"name":    ev.Module.Name,
		"type":    string(ev.Module.Type),
		"path":    ev.Module.FilePath,
	})
}

func (p *SocketIOPublisher) send(event string, payload map[string]any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.emit(event, payload)
}

// Close disconnects. Events sent after Close are dropped.
func (p *SocketIOPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.close()
}
