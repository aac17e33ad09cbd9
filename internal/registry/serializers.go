package registry

import (
	"github.com/vk/jpsloader/internal/model"
	"github.com/vk/jpsloader/internal/xmldoc"
)

// DefaultConfigFileName is the .idea file project extensions are read from
// unless they name another one.
const DefaultConfigFileName = "misc.xml"

// Extension is implemented by every bundled plugin package.
type Extension interface {
	Name() string
	Register(r *Registry)
}

// ModulePropertiesSerializer parses the typed properties of one module type.
type ModulePropertiesSerializer interface {
	TypeID() string
	ModuleType() model.ModuleType
	// ComponentName is the descriptor component holding the properties, or
	// "" when the type has none.
	ComponentName() string
	// LoadProperties receives the component, which is nil when it is absent
	// from the descriptor.
	LoadProperties(component *xmldoc.Element) (model.ModuleProperties, error)
}

// ProjectExtensionSerializer loads one optional project-level component.
type ProjectExtensionSerializer interface {
	ComponentName() string
	// ConfigFileName is the file under .idea holding the component in
	// directory-based projects; "" means misc.xml.
	ConfigFileName() string
	LoadExtension(p *model.Project, component *xmldoc.Element) error
}

// ModuleExtensionSerializer reads extra per-module settings from the
// NewModuleRootManager component.
type ModuleExtensionSerializer interface {
	Name() string
	// LoadModuleExtension receives a nil rootManager when the module has no
	// root manager component.
	LoadModuleExtension(m *model.Module, rootManager *xmldoc.Element) error
}

// FacetSerializer turns a facet <configuration> element into a typed value.
type FacetSerializer interface {
	FacetType() string
	LoadConfiguration(configuration *xmldoc.Element) (any, error)
}

// PlainModuleSerializer is the fallback for module type ids with no
// registered serializer. It yields a plain module with empty properties.
type PlainModuleSerializer struct{}

// TypeID implements ModulePropertiesSerializer.
func (PlainModuleSerializer) TypeID() string { return string(model.PlainModuleType) }

// ModuleType implements ModulePropertiesSerializer.
func (PlainModuleSerializer) ModuleType() model.ModuleType { return model.PlainModuleType }

// ComponentName implements ModulePropertiesSerializer.
func (PlainModuleSerializer) ComponentName() string { return "" }

// LoadProperties implements ModulePropertiesSerializer.
func (PlainModuleSerializer) LoadProperties(*xmldoc.Element) (model.ModuleProperties, error) {
	return model.PlainProperties{}, nil
}

// ConfigFile returns s.ConfigFileName() with the misc.xml default applied.
func ConfigFile(s ProjectExtensionSerializer) string {
	if name := s.ConfigFileName(); name != "" {
		return name
	}
	return DefaultConfigFileName
}
