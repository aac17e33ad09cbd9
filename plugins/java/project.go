package java

import (
	"github.com/vk/jpsloader/internal/model"
	"github.com/vk/jpsloader/internal/xmldoc"
)

// ProjectSettings holds the Java attributes of the ProjectRootManager
// component.
type ProjectSettings struct {
	LanguageLevel string
	OutputURL     string
}

type projectRootManagerSerializer struct{}

func (projectRootManagerSerializer) ComponentName() string  { return "ProjectRootManager" }
func (projectRootManagerSerializer) ConfigFileName() string { return "" }

func (projectRootManagerSerializer) LoadExtension(p *model.Project, component *xmldoc.Element) error {
	settings := &ProjectSettings{
		LanguageLevel: component.AttrOr("languageLevel", ""),
		OutputURL:     component.Child("output").AttrOr("url", ""),
	}
	p.Extensions().Set(ProjectSettingsKey, settings)
	p.OutputURL = settings.OutputURL
	return nil
}

// CompilerSettings holds the parts of compiler.xml the build reads.
type CompilerSettings struct {
	ResourcePatterns []string
	// AnnotationProcessing is true when the default profile is enabled.
	AnnotationProcessing bool
	ProcessorProfiles    []string
	BytecodeTargetLevel  string
	// ModuleTargets maps module names to per-module bytecode targets.
	ModuleTargets map[string]string
}

type compilerConfigurationSerializer struct{}

func (compilerConfigurationSerializer) ComponentName() string  { return "CompilerConfiguration" }
func (compilerConfigurationSerializer) ConfigFileName() string { return "compiler.xml" }

func (compilerConfigurationSerializer) LoadExtension(p *model.Project, component *xmldoc.Element) error {
	s := &CompilerSettings{}
	for _, entry := range component.Child("wildcardResourcePatterns").ChildrenNamed("entry") {
		if name, ok := entry.Attr("name"); ok {
			s.ResourcePatterns = append(s.ResourcePatterns, name)
		}
	}
	for _, profile := range component.Child("annotationProcessing").ChildrenNamed("profile") {
		name := profile.AttrOr("name", "")
		s.ProcessorProfiles = append(s.ProcessorProfiles, name)
		if profile.BoolAttr("default") && profile.AttrOr("enabled", "false") == "true" {
			s.AnnotationProcessing = true
		}
	}
	if target := component.Child("bytecodeTargetLevel"); target != nil {
		s.BytecodeTargetLevel = target.AttrOr("target", "")
		for _, mod := range target.ChildrenNamed("module") {
			if s.ModuleTargets == nil {
				s.ModuleTargets = make(map[string]string)
			}
			s.ModuleTargets[mod.AttrOr("name", "")] = mod.AttrOr("target", "")
		}
	}
	p.Extensions().Set(CompilerSettingsKey, s)
	return nil
}
