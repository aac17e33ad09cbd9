package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/jpsloader/internal/ctxlog"
	"github.com/vk/jpsloader/internal/macro"
	"github.com/vk/jpsloader/internal/model"
	"github.com/vk/jpsloader/internal/serialization"
	"github.com/vk/jpsloader/internal/xmldoc"
)

// LoadModule parses a single module descriptor. projectSdkType is used for
// inherited SDK entries; pass "" when the project declares no SDK.
func (l *Loader) LoadModule(ctx context.Context, descriptorPath string, projectSdkType model.SdkType) (*model.Module, error) {
	return l.loadModule(ctx, descriptorPath, projectSdkType, l.pathVariables)
}

func (l *Loader) loadModule(ctx context.Context, descriptorPath string, projectSdkType model.SdkType, pathVariables map[string]string) (*model.Module, error) {
	name := strings.TrimSuffix(filepath.Base(descriptorPath), filepath.Ext(descriptorPath))
	logger := ctxlog.FromContext(ctx).With("module", name)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Loading module.", "path", descriptorPath)

	exp := macro.New(pathVariables)
	exp.AddFileHierarchyReplacements("MODULE_DIR", filepath.Dir(descriptorPath))

	root, err := l.docs.LoadRootElement(descriptorPath, exp)
	if err != nil {
		return nil, err
	}

	typeID := root.AttrOr("type", "")
	s, found := l.reg.FindModulePropertiesSerializer(typeID)
	if !found {
		logger.Warn("No serializer for module type, using plain module.", "type_id", typeID)
	}

	var propsComponent *xmldoc.Element
	if component := s.ComponentName(); component != "" {
		propsComponent = root.FindComponent(component)
	}
	props, err := s.LoadProperties(propsComponent)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s properties: %w", s.TypeID(), err)
	}

	m := model.NewModule(name, s.ModuleType(), props)
	m.DeclaredTypeID = typeID
	m.FilePath = filepath.ToSlash(descriptorPath)

	rootManager := root.FindComponent(serialization.RootManagerComponent)
	if err := serialization.LoadRootModel(ctx, m, rootManager, projectSdkType, l.reg); err != nil {
		return nil, fmt.Errorf("failed to load root model: %w", err)
	}
	for _, ext := range l.reg.ModuleExtensionSerializers() {
		if err := ext.LoadModuleExtension(m, rootManager); err != nil {
			return nil, fmt.Errorf("module extension %s: %w", ext.Name(), err)
		}
	}

	facets := root.FindComponent(serialization.FacetManagerComponent)
	if err := serialization.LoadFacets(m, facets, m.FilePath, l.reg); err != nil {
		return nil, fmt.Errorf("failed to load facets: %w", err)
	}

	logger.Debug("Module loaded.", "type", m.Type, "order_entries", len(m.OrderEntries), "facets", len(m.Facets))
	return m, nil
}
