package loader

import (
	"time"

	"github.com/vk/jpsloader/internal/registry"
	"github.com/vk/jpsloader/internal/workerpool"
	"github.com/vk/jpsloader/internal/xmldoc"
)

// Loader loads projects and modules. The registry is frozen by New; the pool
// is shared and never closed by the Loader.
type Loader struct {
	reg           *registry.Registry
	pool          *workerpool.Pool
	docs          *xmldoc.Loader
	listener      ProgressListener
	timeout       time.Duration
	pathVariables map[string]string
}

// Option configures a Loader.
type Option func(*Loader)

// WithListener reports stage transitions and attached modules to l.
func WithListener(l ProgressListener) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.listener = l
		}
	}
}

// WithTimeout bounds each LoadProject call. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(ld *Loader) {
		ld.timeout = d
	}
}

// WithPathVariables sets the path variables LoadModule expands. LoadProject
// takes its own.
func WithPathVariables(vars map[string]string) Option {
	return func(ld *Loader) {
		ld.pathVariables = vars
	}
}

// New creates a Loader and freezes reg.
func New(reg *registry.Registry, pool *workerpool.Pool, docs *xmldoc.Loader, opts ...Option) *Loader {
	reg.Freeze()
	l := &Loader{
		reg:      reg,
		pool:     pool,
		docs:     docs,
		listener: nopListener{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}
