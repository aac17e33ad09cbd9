// Package model is the in-memory project graph produced by the loader:
// Project -> Modules -> content entries, order entries, libraries, SDK
// references, facets and artifacts.
//
// A Project is populated once by a single goroutine (the loader's assembler)
// and is read-only afterwards, so the types here carry no locks. Modules are
// built on worker goroutines but are owned by exactly one goroutine until the
// assembler attaches them.
package model
