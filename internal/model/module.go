package model

// ModuleType identifies the kind of module, e.g. "JAVA_MODULE".
type ModuleType string

// PlainModuleType is the type given to modules whose declared type id has no
// registered serializer.
const PlainModuleType ModuleType = "JAVA_MODULE"

// ModuleProperties is the typed payload a module-properties serializer
// produces for its module type.
type ModuleProperties interface {
	ModuleType() ModuleType
}

// PlainProperties is the empty payload of plain modules.
type PlainProperties struct{}

// ModuleType implements ModuleProperties.
func (PlainProperties) ModuleType() ModuleType { return PlainModuleType }

// ModuleOutput says where a module's classes are compiled to. With Inherit
// set the directories are derived from the project output and URL and
// TestURL are ignored.
type ModuleOutput struct {
	Inherit bool
	URL     string
	TestURL string
}

// Module is one .iml descriptor loaded into memory.
type Module struct {
	Name string
	Type ModuleType
	// DeclaredTypeID is the raw type attribute of the descriptor. It differs
	// from Type when the loader fell back to the plain module type.
	DeclaredTypeID string
	Properties     ModuleProperties
	// FilePath is the system-independent path of the descriptor.
	FilePath string
	Output   ModuleOutput

	ContentEntries []*ContentEntry
	OrderEntries   []OrderEntry
	Facets         []*Facet

	libraries  *LibraryCollection
	sdkRefs    *SdkReferencesTable
	extensions Extensions
}

// NewModule creates a module with empty collections.
func NewModule(name string, typ ModuleType, props ModuleProperties) *Module {
	if props == nil {
		props = PlainProperties{}
	}
	return &Module{
		Name:       name,
		Type:       typ,
		Properties: props,
		libraries:  NewLibraryCollection(),
		sdkRefs:    NewSdkReferencesTable(),
	}
}

// Libraries returns the module-level library table.
func (m *Module) Libraries() *LibraryCollection { return m.libraries }

// SdkReferences returns the module SDK references.
func (m *Module) SdkReferences() *SdkReferencesTable { return m.sdkRefs }

// Extensions returns the container module extension serializers write to.
func (m *Module) Extensions() *Extensions { return &m.extensions }

// AddContentEntry appends a content root.
func (m *Module) AddContentEntry(c *ContentEntry) { m.ContentEntries = append(m.ContentEntries, c) }

// AddOrderEntry appends a dependency. Position is significant.
func (m *Module) AddOrderEntry(e OrderEntry) { m.OrderEntries = append(m.OrderEntries, e) }

// ContentRootURLs returns the content root URLs in declaration order.
func (m *Module) ContentRootURLs() []string {
	urls := make([]string, 0, len(m.ContentEntries))
	for _, c := range m.ContentEntries {
		urls = append(urls, c.URL)
	}
	return urls
}

// SourceRootURLs returns the source folder URLs of all content entries.
// Test roots are included only when includeTests is set.
func (m *Module) SourceRootURLs(includeTests bool) []string {
	var urls []string
	for _, c := range m.ContentEntries {
		for _, sf := range c.SourceFolders {
			if sf.IsTest && !includeTests {
				continue
			}
			urls = append(urls, sf.URL)
		}
	}
	return urls
}

// Dependencies returns the module names this module depends on, in order.
func (m *Module) Dependencies() []string {
	var names []string
	for _, e := range m.OrderEntries {
		if d, ok := e.(*ModuleDependencyEntry); ok {
			names = append(names, d.ModuleName)
		}
	}
	return names
}
