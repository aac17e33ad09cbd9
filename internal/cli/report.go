package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/vk/jpsloader/internal/model"
	"gopkg.in/yaml.v3"
)

type projectReport struct {
	Name      string           `json:"name" yaml:"name"`
	BaseDir   string           `json:"base_dir" yaml:"base_dir"`
	Sdks      []sdkReport      `json:"sdks,omitempty" yaml:"sdks,omitempty"`
	Modules   []moduleReport   `json:"modules" yaml:"modules"`
	Libraries []libraryReport  `json:"libraries" yaml:"libraries"`
	Artifacts []artifactReport `json:"artifacts" yaml:"artifacts"`
}

type sdkReport struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

type moduleReport struct {
	Name         string   `json:"name" yaml:"name"`
	Type         string   `json:"type" yaml:"type"`
	Path         string   `json:"path" yaml:"path"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	SourceRoots  []string `json:"source_roots,omitempty" yaml:"source_roots,omitempty"`
	Facets       []string `json:"facets,omitempty" yaml:"facets,omitempty"`
}

type libraryReport struct {
	Name    string   `json:"name" yaml:"name"`
	Classes []string `json:"classes,omitempty" yaml:"classes,omitempty"`
}

type artifactReport struct {
	Name    string   `json:"name" yaml:"name"`
	Type    string   `json:"type" yaml:"type"`
	Output  string   `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	Modules []string `json:"modules,omitempty" yaml:"modules,omitempty"`
}

func newProjectReport(p *model.Project) projectReport {
	r := projectReport{
		Name:      p.Name,
		BaseDir:   p.BaseDir,
		Modules:   []moduleReport{},
		Libraries: []libraryReport{},
		Artifacts: []artifactReport{},
	}
	for _, ref := range p.SdkReferences().All() {
		r.Sdks = append(r.Sdks, sdkReport{Name: ref.Name, Type: string(ref.Type)})
	}
	for _, m := range p.Modules() {
		r.Modules = append(r.Modules, newModuleReport(m))
	}
	for _, lib := range p.Libraries().All() {
		r.Libraries = append(r.Libraries, libraryReport{Name: lib.Name, Classes: lib.RootURLs(model.RootClasses)})
	}
	for _, a := range p.Artifacts() {
		r.Artifacts = append(r.Artifacts, artifactReport{
			Name:    a.Name,
			Type:    a.Type,
			Output:  a.OutputPath,
			Modules: a.ModuleReferences(),
		})
	}
	return r
}

func newModuleReport(m *model.Module) moduleReport {
	r := moduleReport{
		Name:         m.Name,
		Type:         string(m.Type),
		Path:         m.FilePath,
		Dependencies: m.Dependencies(),
		SourceRoots:  m.SourceRootURLs(true),
	}
	for _, f := range m.Facets {
		r.Facets = append(r.Facets, f.Type+":"+f.Name)
	}
	return r
}

// render writes v in the selected output format. text is used for "text".
func render(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}

func writeProjectText(w io.Writer, r projectReport) error {
	fmt.Fprintf(w, "Project %s (%s)\n", r.Name, r.BaseDir)
	for _, sdk := range r.Sdks {
		fmt.Fprintf(w, "  SDK: %s (%s)\n", sdk.Name, sdk.Type)
	}
	fmt.Fprintf(w, "  Modules (%d):\n", len(r.Modules))
	if err := writeModulesText(w, r.Modules, "    "); err != nil {
		return err
	}
	fmt.Fprintf(w, "  Libraries (%d):\n", len(r.Libraries))
	for _, lib := range r.Libraries {
		fmt.Fprintf(w, "    %s\n", lib.Name)
	}
	fmt.Fprintf(w, "  Artifacts (%d):\n", len(r.Artifacts))
	for _, a := range r.Artifacts {
		fmt.Fprintf(w, "    %s [%s] %s\n", a.Name, a.Type, a.Output)
	}
	return nil
}

func writeModulesText(w io.Writer, modules []moduleReport, indent string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, m := range modules {
		fmt.Fprintf(tw, "%s%s\t%s\t%s\n", indent, m.Name, m.Type, m.Path)
	}
	return tw.Flush()
}
