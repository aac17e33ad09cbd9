package model

// Facet is a pluggable sub-configuration attached to a module.
type Facet struct {
	Type string
	Name string
	// ModuleFilePath is the system-independent path of the owning
	// descriptor, used to resolve relative paths in the configuration.
	ModuleFilePath string
	// Configuration is the raw <configuration> element attributes and
	// children flattened by name, kept for facet types without a
	// registered serializer.
	Configuration map[string]string
	// Properties is the typed payload of a registered facet serializer.
	Properties any
	SubFacets  []*Facet
}
