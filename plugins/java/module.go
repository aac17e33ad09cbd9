// Package java contributes the plain Java module type, the Java SDK type and
// the Java compiler settings stored in project and module descriptors.
package java

import (
	"github.com/vk/jpsloader/internal/model"
	"github.com/vk/jpsloader/internal/registry"
)

// Extension keys under which the settings are stored.
const (
	ProjectSettingsKey  = "java.project"
	CompilerSettingsKey = "java.compiler"
	ModuleSettingsKey   = "java.module"
)

// Module implements the registry.Extension interface for this package.
type Module struct{}

// Name implements registry.Extension.
func (m *Module) Name() string { return "java" }

// Register registers the Java serializers.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterModuleType(registry.PlainModuleSerializer{})
	r.RegisterSdkType(model.JavaSdkType)
	r.RegisterProjectExtension(projectRootManagerSerializer{})
	r.RegisterProjectExtension(compilerConfigurationSerializer{})
	r.RegisterModuleExtension(moduleSettingsSerializer{})
}

// ProjectSettingsOf returns the project-wide Java settings, if loaded.
func ProjectSettingsOf(p *model.Project) (*ProjectSettings, bool) {
	return model.ExtensionOf[*ProjectSettings](p.Extensions(), ProjectSettingsKey)
}

// CompilerSettingsOf returns the compiler settings, if loaded.
func CompilerSettingsOf(p *model.Project) (*CompilerSettings, bool) {
	return model.ExtensionOf[*CompilerSettings](p.Extensions(), CompilerSettingsKey)
}

// ModuleSettingsOf returns the per-module Java settings, if loaded.
func ModuleSettingsOf(m *model.Module) (*ModuleSettings, bool) {
	return model.ExtensionOf[*ModuleSettings](m.Extensions(), ModuleSettingsKey)
}
