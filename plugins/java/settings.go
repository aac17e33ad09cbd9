package java

import (
	"github.com/vk/jpsloader/internal/model"
	"github.com/vk/jpsloader/internal/xmldoc"
)

// ModuleSettings are the Java attributes of a module's root manager.
type ModuleSettings struct {
	LanguageLevel string
	// InheritOutput means the module compiles into the project output
	// directory and OutputURL/TestOutputURL are ignored.
	InheritOutput bool
	OutputURL     string
	TestOutputURL string
	ExcludeOutput bool
}

type moduleSettingsSerializer struct{}

func (moduleSettingsSerializer) Name() string { return "java-module-settings" }

func (moduleSettingsSerializer) LoadModuleExtension(m *model.Module, rootManager *xmldoc.Element) error {
	if rootManager == nil {
		return nil
	}
	settings := &ModuleSettings{
		LanguageLevel: rootManager.AttrOr("LANGUAGE_LEVEL", ""),
		InheritOutput: rootManager.AttrOr("inherit-compiler-output", "false") == "true",
		OutputURL:     rootManager.Child("output").AttrOr("url", ""),
		TestOutputURL: rootManager.Child("output-test").AttrOr("url", ""),
		ExcludeOutput: rootManager.Child("exclude-output") != nil,
	}
	m.Extensions().Set(ModuleSettingsKey, settings)
	m.Output = model.ModuleOutput{
		Inherit: settings.InheritOutput,
		URL:     settings.OutputURL,
		TestURL: settings.TestOutputURL,
	}
	return nil
}
