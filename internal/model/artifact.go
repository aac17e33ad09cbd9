package model

// PackagingElementKind is the id attribute of an artifact layout element.
type PackagingElementKind string

const (
	ElementRoot         PackagingElementKind = "root"
	ElementArchive      PackagingElementKind = "archive"
	ElementDirectory    PackagingElementKind = "directory"
	ElementModuleOutput PackagingElementKind = "module-output"
	ElementLibrary      PackagingElementKind = "library"
	ElementFileCopy     PackagingElementKind = "file-copy"
	ElementDirCopy      PackagingElementKind = "dir-copy"
	ElementArtifact     PackagingElementKind = "artifact"
)

// PackagingElement is a node of an artifact layout. Only the fields relevant
// to its Kind are set; unknown kinds keep their raw attributes.
type PackagingElement struct {
	Kind PackagingElementKind
	// Name is the archive or directory name, the module name for
	// module-output, or the library name for library.
	Name string
	// Level is the library level for library elements.
	Level string
	// Path is the source path for file-copy and dir-copy.
	Path       string
	Attributes map[string]string
	Children   []*PackagingElement
}

// Artifact is a build output definition.
type Artifact struct {
	Name        string
	Type        string
	OutputPath  string
	BuildOnMake bool
	Root        *PackagingElement
}

// ModuleReferences returns the module names referenced by module-output
// elements, in layout order.
func (a *Artifact) ModuleReferences() []string {
	var out []string
	var walk func(e *PackagingElement)
	walk = func(e *PackagingElement) {
		if e == nil {
			return
		}
		if e.Kind == ElementModuleOutput {
			out = append(out, e.Name)
		}
		for _, c := range e.Children {
			walk(c)
		}
	}
	walk(a.Root)
	return out
}
