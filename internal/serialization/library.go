package serialization

import (
	"strings"

	"github.com/vk/jpsloader/internal/model"
	"github.com/vk/jpsloader/internal/xmldoc"
)

// LibraryTableComponent is the project component listing libraries.
const LibraryTableComponent = "libraryTable"

// LoadLibraries reads every <library> of a library table component into
// coll and returns the names that replaced an existing entry. A nil
// component is a no-op.
func LoadLibraries(component *xmldoc.Element, coll *model.LibraryCollection) []string {
	var replaced []string
	for _, el := range component.ChildrenNamed("library") {
		lib := LoadLibrary(el)
		if coll.Put(lib) {
			replaced = append(replaced, lib.Name)
		}
	}
	return replaced
}

// LoadLibrary reads a single <library> element.
func LoadLibrary(el *xmldoc.Element) *model.Library {
	lib := model.NewLibrary(el.AttrOr("name", ""), el.AttrOr("type", ""))
	for _, child := range el.Children {
		switch {
		case child.Name == "properties":
			lib.Properties = make(map[string]string, len(child.Attrs))
			for _, a := range child.Attrs {
				lib.Properties[a.Name] = a.Value
			}
		case child.Name == "jarDirectory":
			lib.JarDirectories = append(lib.JarDirectories, model.JarDirectory{
				URL:       child.AttrOr("url", ""),
				Recursive: child.AttrOr("recursive", "false") == "true",
				RootType:  model.RootType(child.AttrOr("type", string(model.RootClasses))),
			})
		case child.Name == "excluded":
			// Excluded roots only matter to the indexer.
		case isRootTypeName(child.Name):
			rootType := model.RootType(child.Name)
			if _, ok := lib.Roots[rootType]; !ok {
				lib.Roots[rootType] = nil
			}
			for _, root := range child.ChildrenNamed("root") {
				lib.AddRoot(rootType, root.AttrOr("url", ""))
			}
		}
	}
	return lib
}

// isRootTypeName accepts CLASSES, SOURCES, JAVADOC and the upper-case root
// types custom library kinds add (e.g. NATIVE).
func isRootTypeName(name string) bool {
	return name != "" && strings.ToUpper(name) == name
}
