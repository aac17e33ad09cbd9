// Package python contributes the Python module and SDK types.
package python

import (
	"github.com/vk/jpsloader/internal/model"
	"github.com/vk/jpsloader/internal/registry"
	"github.com/vk/jpsloader/internal/xmldoc"
)

const (
	ModuleType model.ModuleType = "PYTHON_MODULE"
	SdkType    model.SdkType    = "Python SDK"
)

// Properties are the typed properties of a Python module.
type Properties struct{}

// ModuleType implements model.ModuleProperties.
func (Properties) ModuleType() model.ModuleType { return ModuleType }

// Module implements the registry.Extension interface for this package.
type Module struct{}

// Name implements registry.Extension.
func (m *Module) Name() string { return "python" }

// Register registers the Python module and SDK types.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterModuleType(propertiesSerializer{})
	r.RegisterSdkType(SdkType)
}

type propertiesSerializer struct{}

func (propertiesSerializer) TypeID() string               { return string(ModuleType) }
func (propertiesSerializer) ModuleType() model.ModuleType { return ModuleType }
func (propertiesSerializer) ComponentName() string        { return "" }

func (propertiesSerializer) LoadProperties(*xmldoc.Element) (model.ModuleProperties, error) {
	return Properties{}, nil
}
