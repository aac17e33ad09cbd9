package model

import "fmt"

// ClasspathKind selects which dependency scopes and which of a module's
// roots take part in a classpath.
type ClasspathKind int

const (
	ProductionCompile ClasspathKind = iota
	ProductionRuntime
	TestCompile
	TestRuntime
)

var classpathKindNames = [...]string{"compile", "runtime", "test", "test-runtime"}

func (k ClasspathKind) String() string {
	if k < 0 || int(k) >= len(classpathKindNames) {
		return "unknown"
	}
	return classpathKindNames[k]
}

// ParseClasspathKind maps the names printed by String back to kinds.
func ParseClasspathKind(s string) (ClasspathKind, error) {
	for i, name := range classpathKindNames {
		if s == name {
			return ClasspathKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown classpath kind %q", s)
}

// Tests reports whether test roots and outputs are part of the classpath.
func (k ClasspathKind) Tests() bool { return k == TestCompile || k == TestRuntime }

// Includes reports whether an entry with scope s contributes to k.
func (k ClasspathKind) Includes(s DependencyScope) bool {
	switch s {
	case ScopeTest:
		return k.Tests()
	case ScopeRuntime:
		return k == ProductionRuntime || k == TestRuntime
	case ScopeProvided:
		return k != ProductionRuntime
	default:
		return true
	}
}

// ModuleOutputURLs returns the compiler output directories of m, the test
// output first when includeTests is set. Inherited outputs live under
// <project output>/production/<name> and <project output>/test/<name>.
func (p *Project) ModuleOutputURLs(m *Module, includeTests bool) []string {
	production, test := m.Output.URL, m.Output.TestURL
	if m.Output.Inherit {
		production, test = "", ""
		if p.OutputURL != "" {
			production = p.OutputURL + "/production/" + m.Name
			test = p.OutputURL + "/test/" + m.Name
		}
	}

	var urls []string
	if includeTests && test != "" {
		urls = append(urls, test)
	}
	if production != "" {
		urls = append(urls, production)
	}
	return urls
}

// OrderRootURLs enumerates the roots of rootType contributed by m's order
// entries for the given classpath kind, in order-entry order. A module
// contributes its source folders to SOURCES and its compiler output to
// CLASSES. Module dependencies contribute their own roots and, transitively,
// their exported entries. Entries whose scope is outside kind are skipped.
// Application-level libraries and SDKs are not part of the project model and
// are skipped. Duplicate URLs keep their first position.
func OrderRootURLs(p *Project, m *Module, rootType RootType, kind ClasspathKind) []string {
	c := &rootCollector{
		project:  p,
		rootType: rootType,
		kind:     kind,
		seenURL:  make(map[string]bool),
		visiting: map[string]bool{m.Name: true},
	}
	c.collect(m, false)
	return c.urls
}

type rootCollector struct {
	project  *Project
	rootType RootType
	kind     ClasspathKind
	urls     []string
	seenURL  map[string]bool
	visiting map[string]bool

	current      *Module
	exportedOnly bool
}

func (c *rootCollector) collect(m *Module, exportedOnly bool) {
	prevModule, prevExported := c.current, c.exportedOnly
	c.current, c.exportedOnly = m, exportedOnly
	for _, e := range m.OrderEntries {
		Accept(e, c)
	}
	c.current, c.exportedOnly = prevModule, prevExported
}

func (c *rootCollector) add(urls []string) {
	for _, u := range urls {
		if !c.seenURL[u] {
			c.seenURL[u] = true
			c.urls = append(c.urls, u)
		}
	}
}

// addModuleRoots adds m's own roots of the collected type.
func (c *rootCollector) addModuleRoots(m *Module) {
	switch c.rootType {
	case RootSources:
		c.add(m.SourceRootURLs(c.kind.Tests()))
	case RootClasses:
		c.add(c.project.ModuleOutputURLs(m, c.kind.Tests()))
	}
}

func (c *rootCollector) VisitModuleSource(*ModuleSourceEntry) {
	c.addModuleRoots(c.current)
}

func (c *rootCollector) VisitModuleDependency(e *ModuleDependencyEntry) {
	if (c.exportedOnly && !e.Exported) || !c.kind.Includes(e.Scope) {
		return
	}
	dep, ok := c.project.Module(e.ModuleName)
	if !ok || c.visiting[dep.Name] {
		return
	}
	c.visiting[dep.Name] = true
	c.addModuleRoots(dep)
	c.collect(dep, true)
}

func (c *rootCollector) VisitLibraryDependency(e *LibraryDependencyEntry) {
	if (c.exportedOnly && !e.Exported) || !c.kind.Includes(e.Scope) {
		return
	}
	var lib *Library
	var ok bool
	switch e.Level {
	case LevelModule:
		lib, ok = c.current.Libraries().Get(e.LibraryName)
	case LevelProject:
		lib, ok = c.project.Libraries().Get(e.LibraryName)
	}
	if ok {
		c.add(lib.RootURLs(c.rootType))
	}
}

func (c *rootCollector) VisitSdkDependency(*SdkDependencyEntry) {}
