// Package app wires the loader together from a validated configuration. It
// owns the logger, the frozen extension registry, the shared worker pool and
// the progress listeners, independent of any CLI or server entrypoint.
package app
