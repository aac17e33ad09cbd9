package serialization

import (
	"fmt"

	"github.com/vk/jpsloader/internal/model"
	"github.com/vk/jpsloader/internal/xmldoc"
)

// ArtifactManagerComponent is the project component listing artifacts.
const ArtifactManagerComponent = "ArtifactManager"

// LoadArtifacts reads every <artifact> of the component into p. A nil
// component is a no-op.
func LoadArtifacts(p *model.Project, component *xmldoc.Element) error {
	for _, el := range component.ChildrenNamed("artifact") {
		a, err := LoadArtifact(el)
		if err != nil {
			return err
		}
		p.AddArtifact(a)
	}
	return nil
}

// LoadArtifact reads one <artifact> element.
func LoadArtifact(el *xmldoc.Element) (*model.Artifact, error) {
	name, ok := el.Attr("name")
	if !ok || name == "" {
		return nil, fmt.Errorf("artifact without name")
	}
	a := &model.Artifact{
		Name:        name,
		Type:        el.AttrOr("type", "plain"),
		BuildOnMake: el.AttrOr("build-on-make", "false") == "true",
	}
	if out := el.Child("output-path"); out != nil {
		a.OutputPath = out.Text
	}
	if root := el.Child("root"); root != nil {
		a.Root = loadPackagingElement(root)
	}
	return a, nil
}

func loadPackagingElement(el *xmldoc.Element) *model.PackagingElement {
	pe := &model.PackagingElement{Kind: model.PackagingElementKind(el.AttrOr("id", ""))}
	switch pe.Kind {
	case model.ElementArchive, model.ElementDirectory, model.ElementModuleOutput:
		pe.Name = el.AttrOr("name", "")
	case model.ElementLibrary:
		pe.Name = el.AttrOr("name", "")
		pe.Level = el.AttrOr("level", string(model.LevelProject))
	case model.ElementFileCopy, model.ElementDirCopy:
		pe.Path = el.AttrOr("path", "")
	case model.ElementArtifact:
		pe.Name = el.AttrOr("artifact-name", "")
	case model.ElementRoot:
	default:
		pe.Attributes = make(map[string]string, len(el.Attrs))
		for _, a := range el.Attrs {
			pe.Attributes[a.Name] = a.Value
		}
	}
	for _, child := range el.ChildrenNamed("element") {
		pe.Children = append(pe.Children, loadPackagingElement(child))
	}
	return pe
}
