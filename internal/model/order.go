package model

import "strings"

// DependencyScope controls which classpaths an order entry contributes to.
type DependencyScope string

const (
	ScopeCompile  DependencyScope = "COMPILE"
	ScopeTest     DependencyScope = "TEST"
	ScopeRuntime  DependencyScope = "RUNTIME"
	ScopeProvided DependencyScope = "PROVIDED"
)

// ParseScope maps a descriptor scope attribute; empty or unknown values mean
// COMPILE.
func ParseScope(s string) DependencyScope {
	switch DependencyScope(strings.ToUpper(s)) {
	case ScopeTest:
		return ScopeTest
	case ScopeRuntime:
		return ScopeRuntime
	case ScopeProvided:
		return ScopeProvided
	default:
		return ScopeCompile
	}
}

// LibraryLevel says which table a library dependency is resolved against.
type LibraryLevel string

const (
	LevelProject     LibraryLevel = "project"
	LevelModule      LibraryLevel = "module"
	LevelApplication LibraryLevel = "application"
)

// OrderEntry is one element of a module's ordered dependency list. The set
// of implementations is closed: ModuleSourceEntry, ModuleDependencyEntry,
// LibraryDependencyEntry and SdkDependencyEntry.
type OrderEntry interface {
	orderEntry()
	// Kind is the descriptor type attribute of the entry.
	Kind() string
}

// ModuleSourceEntry stands for the module's own source roots.
type ModuleSourceEntry struct {
	// Synthetic is set when the descriptor did not declare the entry.
	Synthetic bool
}

// ModuleDependencyEntry depends on another module of the project.
type ModuleDependencyEntry struct {
	ModuleName string
	Scope      DependencyScope
	Exported   bool
}

// LibraryDependencyEntry depends on a named library.
type LibraryDependencyEntry struct {
	LibraryName string
	Level       LibraryLevel
	Scope       DependencyScope
	Exported    bool
}

// SdkDependencyEntry depends on an SDK. Inherited entries use the project SDK.
type SdkDependencyEntry struct {
	SdkName   string
	SdkType   SdkType
	Inherited bool
}

func (*ModuleSourceEntry) orderEntry()      {}
func (*ModuleDependencyEntry) orderEntry()  {}
func (*LibraryDependencyEntry) orderEntry() {}
func (*SdkDependencyEntry) orderEntry()     {}

func (*ModuleSourceEntry) Kind() string      { return "sourceFolder" }
func (*ModuleDependencyEntry) Kind() string  { return "module" }
func (*LibraryDependencyEntry) Kind() string { return "library" }

func (e *SdkDependencyEntry) Kind() string {
	if e.Inherited {
		return "inheritedJdk"
	}
	return "jdk"
}

// OrderEntryVisitor dispatches on the concrete order entry kind.
type OrderEntryVisitor interface {
	VisitModuleSource(e *ModuleSourceEntry)
	VisitModuleDependency(e *ModuleDependencyEntry)
	VisitLibraryDependency(e *LibraryDependencyEntry)
	VisitSdkDependency(e *SdkDependencyEntry)
}

// Accept calls the visitor method matching e.
func Accept(e OrderEntry, v OrderEntryVisitor) {
	switch entry := e.(type) {
	case *ModuleSourceEntry:
		v.VisitModuleSource(entry)
	case *ModuleDependencyEntry:
		v.VisitModuleDependency(entry)
	case *LibraryDependencyEntry:
		v.VisitLibraryDependency(entry)
	case *SdkDependencyEntry:
		v.VisitSdkDependency(entry)
	}
}
