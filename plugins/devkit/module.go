// Package devkit contributes the plugin module type and the IntelliJ
// Platform SDK type.
package devkit

import (
	"github.com/vk/jpsloader/internal/model"
	"github.com/vk/jpsloader/internal/registry"
	"github.com/vk/jpsloader/internal/xmldoc"
)

// Plugin module type and IntelliJ Platform SDK type.
const (
	ModuleType model.ModuleType = "PLUGIN_MODULE"
	SdkType    model.SdkType    = "IDEA JDK"
)

const buildPropertiesComponent = "DevKit.ModuleBuildProperties"

// Properties are the typed properties of a plugin module.
type Properties struct {
	// PluginXMLURL points at the plugin descriptor; empty when the module
	// does not declare one.
	PluginXMLURL string
	ManifestURL  string
}

// ModuleType implements model.ModuleProperties.
func (*Properties) ModuleType() model.ModuleType { return ModuleType }

// Module implements the registry.Extension interface for this package.
type Module struct{}

// Name implements registry.Extension.
func (m *Module) Name() string { return "devkit" }

// Register registers the plugin module type and the platform SDK type.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterModuleType(propertiesSerializer{})
	r.RegisterSdkType(SdkType)
}

type propertiesSerializer struct{}

func (propertiesSerializer) TypeID() string               { return string(ModuleType) }
func (propertiesSerializer) ModuleType() model.ModuleType { return ModuleType }
func (propertiesSerializer) ComponentName() string        { return buildPropertiesComponent }

func (propertiesSerializer) LoadProperties(component *xmldoc.Element) (model.ModuleProperties, error) {
	return &Properties{
		PluginXMLURL: component.AttrOr("url", ""),
		ManifestURL:  component.AttrOr("manifest", ""),
	}, nil
}
