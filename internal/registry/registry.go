package registry

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/vk/jpsloader/internal/model"
)

// Registry holds the serializers contributed by the configured extensions.
type Registry struct {
	extensions        []string
	moduleTypes       []ModulePropertiesSerializer
	projectExtensions []ProjectExtensionSerializer
	moduleExtensions  []ModuleExtensionSerializer
	facetTypes        []FacetSerializer
	sdkTypes          map[model.SdkType]struct{}
	frozen            bool
}

// New creates an empty, mutable Registry.
func New() *Registry {
	return &Registry{sdkTypes: make(map[model.SdkType]struct{})}
}

// Install registers each extension in order and records its name.
func (r *Registry) Install(exts ...Extension) {
	for _, ext := range exts {
		r.mustBeMutable()
		slog.Debug("Installing extension.", "name", ext.Name())
		ext.Register(r)
		r.extensions = append(r.extensions, ext.Name())
	}
}

// RegisterModuleType registers a module-properties serializer.
func (r *Registry) RegisterModuleType(s ModulePropertiesSerializer) {
	r.mustBeMutable()
	for _, existing := range r.moduleTypes {
		if existing.TypeID() == s.TypeID() {
			panic(fmt.Sprintf("module type '%s' already registered", s.TypeID()))
		}
	}
	slog.Debug("Registering module type.", "type_id", s.TypeID())
	r.moduleTypes = append(r.moduleTypes, s)
}

// RegisterProjectExtension registers a project component serializer.
func (r *Registry) RegisterProjectExtension(s ProjectExtensionSerializer) {
	r.mustBeMutable()
	for _, existing := range r.projectExtensions {
		if existing.ComponentName() == s.ComponentName() && ConfigFile(existing) == ConfigFile(s) {
			panic(fmt.Sprintf("project extension '%s' in %s already registered", s.ComponentName(), ConfigFile(s)))
		}
	}
	slog.Debug("Registering project extension.", "component", s.ComponentName(), "file", ConfigFile(s))
	r.projectExtensions = append(r.projectExtensions, s)
}

// RegisterModuleExtension registers a per-module settings serializer.
func (r *Registry) RegisterModuleExtension(s ModuleExtensionSerializer) {
	r.mustBeMutable()
	for _, existing := range r.moduleExtensions {
		if existing.Name() == s.Name() {
			panic(fmt.Sprintf("module extension '%s' already registered", s.Name()))
		}
	}
	slog.Debug("Registering module extension.", "name", s.Name())
	r.moduleExtensions = append(r.moduleExtensions, s)
}

// RegisterFacetType registers a facet configuration serializer.
func (r *Registry) RegisterFacetType(s FacetSerializer) {
	r.mustBeMutable()
	for _, existing := range r.facetTypes {
		if existing.FacetType() == s.FacetType() {
			panic(fmt.Sprintf("facet type '%s' already registered", s.FacetType()))
		}
	}
	slog.Debug("Registering facet type.", "type", s.FacetType())
	r.facetTypes = append(r.facetTypes, s)
}

// RegisterSdkType makes an SDK type id known.
func (r *Registry) RegisterSdkType(t model.SdkType) {
	r.mustBeMutable()
	if _, exists := r.sdkTypes[t]; exists {
		panic(fmt.Sprintf("sdk type '%s' already registered", t))
	}
	r.sdkTypes[t] = struct{}{}
}

// Freeze ends the registration phase. Registering afterwards panics.
func (r *Registry) Freeze() { r.frozen = true }

// Frozen reports whether Freeze was called.
func (r *Registry) Frozen() bool { return r.frozen }

func (r *Registry) mustBeMutable() {
	if r.frozen {
		panic("registry: registration after Freeze")
	}
}

// Extensions returns the names of the installed extensions in install order.
func (r *Registry) Extensions() []string {
	out := make([]string, len(r.extensions))
	copy(out, r.extensions)
	return out
}

// FindModulePropertiesSerializer scans the registered module types in
// registration order. When no serializer matches typeID the plain module
// serializer is returned together with false.
func (r *Registry) FindModulePropertiesSerializer(typeID string) (ModulePropertiesSerializer, bool) {
	for _, s := range r.moduleTypes {
		if s.TypeID() == typeID {
			return s, true
		}
	}
	return PlainModuleSerializer{}, false
}

// ModuleTypes returns the registered module type ids.
func (r *Registry) ModuleTypes() []string {
	out := make([]string, 0, len(r.moduleTypes))
	for _, s := range r.moduleTypes {
		out = append(out, s.TypeID())
	}
	return out
}

// ProjectExtensionSerializers returns the project serializers in
// registration order.
func (r *Registry) ProjectExtensionSerializers() []ProjectExtensionSerializer {
	out := make([]ProjectExtensionSerializer, len(r.projectExtensions))
	copy(out, r.projectExtensions)
	return out
}

// ModuleExtensionSerializers returns the module serializers in registration
// order.
func (r *Registry) ModuleExtensionSerializers() []ModuleExtensionSerializer {
	out := make([]ModuleExtensionSerializer, len(r.moduleExtensions))
	copy(out, r.moduleExtensions)
	return out
}

// FindFacetSerializer returns the serializer for a facet type.
func (r *Registry) FindFacetSerializer(facetType string) (FacetSerializer, bool) {
	for _, s := range r.facetTypes {
		if s.FacetType() == facetType {
			return s, true
		}
	}
	return nil, false
}

// FindSdkType resolves an SDK type id. Unknown ids resolve to the Java SDK
// type and false.
func (r *Registry) FindSdkType(id string) (model.SdkType, bool) {
	if _, ok := r.sdkTypes[model.SdkType(id)]; ok {
		return model.SdkType(id), true
	}
	return model.JavaSdkType, false
}

// Validate checks the registered serializers for missing identifiers.
func (r *Registry) Validate() error {
	var errs []string
	for i, s := range r.moduleTypes {
		if s.TypeID() == "" {
			errs = append(errs, fmt.Sprintf("module type #%d has an empty type id", i))
		}
		if s.ModuleType() == "" {
			errs = append(errs, fmt.Sprintf("module type '%s' has an empty module type", s.TypeID()))
		}
	}
	for i, s := range r.projectExtensions {
		if s.ComponentName() == "" {
			errs = append(errs, fmt.Sprintf("project extension #%d has an empty component name", i))
		}
	}
	for i, s := range r.facetTypes {
		if s.FacetType() == "" {
			errs = append(errs, fmt.Sprintf("facet serializer #%d has an empty facet type", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
