package web

import (
	"fmt"

	"github.com/vk/jpsloader/internal/xmldoc"
)

// Descriptor is a deployment descriptor such as web.xml.
type Descriptor struct {
	Name string
	URL  string
}

// WebRoot maps a directory into the deployed application.
type WebRoot struct {
	URL      string
	Relative string
}

// FacetConfiguration is the typed configuration of a web facet.
type FacetConfiguration struct {
	Descriptors []Descriptor
	WebRoots    []WebRoot
	SourceRoots []string
}

type facetSerializer struct{}

func (facetSerializer) FacetType() string { return FacetType }

func (facetSerializer) LoadConfiguration(cfg *xmldoc.Element) (any, error) {
	out := &FacetConfiguration{}
	for _, d := range cfg.Child("descriptors").ChildrenNamed("deploymentDescriptor") {
		url, ok := d.Attr("url")
		if !ok {
			return nil, fmt.Errorf("deployment descriptor %q has no url", d.AttrOr("name", ""))
		}
		out.Descriptors = append(out.Descriptors, Descriptor{Name: d.AttrOr("name", ""), URL: url})
	}
	for _, root := range cfg.Child("webroots").ChildrenNamed("root") {
		out.WebRoots = append(out.WebRoots, WebRoot{
			URL:      root.AttrOr("url", ""),
			Relative: root.AttrOr("relative", "/"),
		})
	}
	for _, root := range cfg.Child("sourceRoots").ChildrenNamed("root") {
		out.SourceRoots = append(out.SourceRoots, root.AttrOr("url", ""))
	}
	return out, nil
}
