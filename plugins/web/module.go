// Package web contributes the web module type and the web facet.
package web

import (
	"github.com/vk/jpsloader/internal/model"
	"github.com/vk/jpsloader/internal/registry"
	"github.com/vk/jpsloader/internal/xmldoc"
)

const (
	ModuleType model.ModuleType = "WEB_MODULE"
	FacetType                   = "web"
)

// Properties are the (empty) typed properties of a web module.
type Properties struct{}

// ModuleType implements model.ModuleProperties.
func (Properties) ModuleType() model.ModuleType { return ModuleType }

// Module implements the registry.Extension interface for this package.
type Module struct{}

// Name implements registry.Extension.
func (m *Module) Name() string { return "web" }

// Register registers the web module type and facet.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterModuleType(propertiesSerializer{})
	r.RegisterFacetType(facetSerializer{})
}

type propertiesSerializer struct{}

func (propertiesSerializer) TypeID() string               { return string(ModuleType) }
func (propertiesSerializer) ModuleType() model.ModuleType { return ModuleType }
func (propertiesSerializer) ComponentName() string        { return "" }

func (propertiesSerializer) LoadProperties(*xmldoc.Element) (model.ModuleProperties, error) {
	return Properties{}, nil
}
