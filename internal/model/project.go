package model

import (
	"fmt"
	"sort"
)

// DuplicateModuleError is returned when two descriptors resolve to the same
// module name.
type DuplicateModuleError struct {
	Name string
}

func (e *DuplicateModuleError) Error() string {
	return fmt.Sprintf("duplicate module name %q", e.Name)
}

// Project is the root of the model.
type Project struct {
	Name string
	// BaseDir is the system-independent directory $PROJECT_DIR$ expands to.
	BaseDir string
	// OutputURL is the compiler output root modules inherit, if any.
	OutputURL string

	modules    []*Module
	byName     map[string]*Module
	libraries  *LibraryCollection
	sdkRefs    *SdkReferencesTable
	artifacts  []*Artifact
	extensions Extensions
}

// NewProject creates an empty project.
func NewProject(name string) *Project {
	return &Project{
		Name:      name,
		byName:    make(map[string]*Module),
		libraries: NewLibraryCollection(),
		sdkRefs:   NewSdkReferencesTable(),
	}
}

// AddModule appends m. Module names are unique within a project.
func (p *Project) AddModule(m *Module) error {
	if _, exists := p.byName[m.Name]; exists {
		return &DuplicateModuleError{Name: m.Name}
	}
	p.modules = append(p.modules, m)
	p.byName[m.Name] = m
	return nil
}

// Modules returns the modules in declaration order.
func (p *Project) Modules() []*Module {
	out := make([]*Module, len(p.modules))
	copy(out, p.modules)
	return out
}

// ModulesOfType returns the modules of the given type in declaration order.
func (p *Project) ModulesOfType(t ModuleType) []*Module {
	var out []*Module
	for _, m := range p.modules {
		if m.Type == t {
			out = append(out, m)
		}
	}
	return out
}

// Module looks a module up by name.
func (p *Project) Module(name string) (*Module, bool) {
	m, ok := p.byName[name]
	return m, ok
}

// Libraries returns the project-level library table.
func (p *Project) Libraries() *LibraryCollection { return p.libraries }

// SdkReferences returns the project SDK references.
func (p *Project) SdkReferences() *SdkReferencesTable { return p.sdkRefs }

// AddArtifact appends an artifact definition.
func (p *Project) AddArtifact(a *Artifact) { p.artifacts = append(p.artifacts, a) }

// Artifacts returns the artifact definitions in load order.
func (p *Project) Artifacts() []*Artifact {
	out := make([]*Artifact, len(p.artifacts))
	copy(out, p.artifacts)
	return out
}

// Extensions returns the container project extension serializers write to.
func (p *Project) Extensions() *Extensions { return &p.extensions }

// Extensions holds typed payloads contributed by pluggable serializers,
// keyed by the component or extension name that produced them.
type Extensions struct {
	m map[string]any
}

// Set stores v under key, replacing any previous value.
func (e *Extensions) Set(key string, v any) {
	if e.m == nil {
		e.m = make(map[string]any)
	}
	e.m[key] = v
}

// Get returns the raw payload stored under key.
func (e *Extensions) Get(key string) (any, bool) {
	v, ok := e.m[key]
	return v, ok
}

// Keys returns the stored keys, sorted.
func (e *Extensions) Keys() []string {
	keys := make([]string, 0, len(e.m))
	for k := range e.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ExtensionOf returns the payload stored under key if it has type T.
func ExtensionOf[T any](e *Extensions, key string) (T, bool) {
	var zero T
	v, ok := e.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
