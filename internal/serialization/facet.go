package serialization

import (
	"fmt"

	"github.com/vk/jpsloader/internal/model"
	"github.com/vk/jpsloader/internal/registry"
	"github.com/vk/jpsloader/internal/xmldoc"
)

// FacetManagerComponent is the module component listing facets.
const FacetManagerComponent = "FacetManager"

// FacetSerializerLookup finds typed facet serializers; *registry.Registry
// implements it.
type FacetSerializerLookup interface {
	FindFacetSerializer(facetType string) (registry.FacetSerializer, bool)
}

// LoadFacets attaches the facets declared in the FacetManager component to
// m. Every facet, including sub-facets, is tagged with modulePath.
func LoadFacets(m *model.Module, component *xmldoc.Element, modulePath string, lookup FacetSerializerLookup) error {
	for _, el := range component.ChildrenNamed("facet") {
		f, err := loadFacet(el, modulePath, lookup)
		if err != nil {
			return err
		}
		m.Facets = append(m.Facets, f)
	}
	return nil
}

func loadFacet(el *xmldoc.Element, modulePath string, lookup FacetSerializerLookup) (*model.Facet, error) {
	f := &model.Facet{
		Type:           el.AttrOr("type", ""),
		Name:           el.AttrOr("name", ""),
		ModuleFilePath: modulePath,
	}
	cfg := el.Child("configuration")
	f.Configuration = flattenConfiguration(cfg)

	if lookup != nil {
		if s, ok := lookup.FindFacetSerializer(f.Type); ok {
			props, err := s.LoadConfiguration(cfg)
			if err != nil {
				return nil, fmt.Errorf("facet %q (%s): %w", f.Name, f.Type, err)
			}
			f.Properties = props
		}
	}

	for _, sub := range el.ChildrenNamed("facet") {
		child, err := loadFacet(sub, modulePath, lookup)
		if err != nil {
			return nil, err
		}
		f.SubFacets = append(f.SubFacets, child)
	}
	return f, nil
}

// flattenConfiguration keeps configuration attributes, <option name value>
// pairs and the url of url-bearing children. Later keys win.
func flattenConfiguration(cfg *xmldoc.Element) map[string]string {
	if cfg == nil {
		return nil
	}
	out := make(map[string]string)
	for _, a := range cfg.Attrs {
		out[a.Name] = a.Value
	}
	for _, child := range cfg.Children {
		if child.Name == "option" {
			if name, ok := child.Attr("name"); ok {
				out[name] = child.AttrOr("value", child.Text)
			}
			continue
		}
		if url, ok := child.Attr("url"); ok {
			out[child.Name] = url
		}
	}
	return out
}
