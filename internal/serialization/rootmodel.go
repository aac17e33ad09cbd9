package serialization

import (
	"context"
	"fmt"

	"github.com/vk/jpsloader/internal/ctxlog"
	"github.com/vk/jpsloader/internal/model"
	"github.com/vk/jpsloader/internal/xmldoc"
)

// RootManagerComponent is the module component holding content and order
// entries.
const RootManagerComponent = "NewModuleRootManager"

// SdkTypeResolver resolves SDK type ids; *registry.Registry implements it.
type SdkTypeResolver interface {
	FindSdkType(id string) (model.SdkType, bool)
}

// LoadRootModel fills m's content entries, order entries, module libraries
// and SDK references from the root manager component. projectSdkType is the
// project default ("" when the project declares none) and is used for
// inherited SDK entries.
func LoadRootModel(ctx context.Context, m *model.Module, component *xmldoc.Element, projectSdkType model.SdkType, sdks SdkTypeResolver) error {
	logger := ctxlog.FromContext(ctx).With("module", m.Name)
	inherited := projectSdkType
	if inherited == "" {
		inherited = model.JavaSdkType
	}

	if component == nil {
		logger.Debug("Module has no root manager component, using defaults.")
		m.AddOrderEntry(&model.ModuleSourceEntry{Synthetic: true})
		m.AddOrderEntry(&model.SdkDependencyEntry{SdkType: inherited, Inherited: true})
		return nil
	}

	for _, content := range component.ChildrenNamed("content") {
		m.AddContentEntry(loadContentEntry(content))
	}

	moduleSourceAdded := false
	moduleLibraryNum := 0
	for i, el := range component.ChildrenNamed("orderEntry") {
		typ := el.AttrOr("type", "")
		switch typ {
		case "sourceFolder":
			m.AddOrderEntry(&model.ModuleSourceEntry{})
			moduleSourceAdded = true

		case "inheritedJdk":
			m.AddOrderEntry(&model.SdkDependencyEntry{SdkType: inherited, Inherited: true})

		case "jdk":
			name, ok := el.Attr("jdkName")
			if !ok {
				return fmt.Errorf("order entry #%d: jdk entry without jdkName", i)
			}
			sdkType, known := sdks.FindSdkType(el.AttrOr("jdkType", string(model.JavaSdkType)))
			if !known {
				logger.Debug("Unknown SDK type, treating as Java SDK.", "jdkType", el.AttrOr("jdkType", ""))
			}
			SetSdkReference(m.SdkReferences(), name, sdkType)
			m.AddOrderEntry(&model.SdkDependencyEntry{SdkName: name, SdkType: sdkType})

		case "module":
			name, ok := el.Attr("module-name")
			if !ok || name == "" {
				return fmt.Errorf("order entry #%d: module entry without module-name", i)
			}
			m.AddOrderEntry(&model.ModuleDependencyEntry{
				ModuleName: name,
				Scope:      model.ParseScope(el.AttrOr("scope", "")),
				Exported:   hasAttr(el, "exported"),
			})

		case "library":
			name, ok := el.Attr("name")
			if !ok || name == "" {
				return fmt.Errorf("order entry #%d: library entry without name", i)
			}
			m.AddOrderEntry(&model.LibraryDependencyEntry{
				LibraryName: name,
				Level:       model.LibraryLevel(el.AttrOr("level", string(model.LevelProject))),
				Scope:       model.ParseScope(el.AttrOr("scope", "")),
				Exported:    hasAttr(el, "exported"),
			})

		case "module-library":
			libEl := el.Child("library")
			if libEl == nil {
				return fmt.Errorf("order entry #%d: module-library entry without library element", i)
			}
			lib := LoadLibrary(libEl)
			if lib.Name == "" {
				lib.Name = fmt.Sprintf("#%d", moduleLibraryNum)
				moduleLibraryNum++
			}
			m.Libraries().Put(lib)
			m.AddOrderEntry(&model.LibraryDependencyEntry{
				LibraryName: lib.Name,
				Level:       model.LevelModule,
				Scope:       model.ParseScope(el.AttrOr("scope", "")),
				Exported:    hasAttr(el, "exported"),
			})

		default:
			logger.Debug("Skipping unknown order entry type.", "type", typ, "index", i)
		}
	}

	if !moduleSourceAdded {
		m.AddOrderEntry(&model.ModuleSourceEntry{Synthetic: true})
	}
	return nil
}

func loadContentEntry(el *xmldoc.Element) *model.ContentEntry {
	ce := &model.ContentEntry{URL: el.AttrOr("url", "")}
	for _, sf := range el.ChildrenNamed("sourceFolder") {
		rootType := model.JavaSource
		isTest := sf.AttrOr("isTestSource", "false") == "true"
		switch sf.AttrOr("type", "") {
		case "java-resource":
			rootType = model.JavaResource
		case "java-test-resource":
			rootType = model.JavaResource
			isTest = true
		case "java-test":
			isTest = true
		}
		ce.SourceFolders = append(ce.SourceFolders, &model.SourceFolder{
			URL:           sf.AttrOr("url", ""),
			IsTest:        isTest,
			PackagePrefix: sf.AttrOr("packagePrefix", ""),
			RootType:      rootType,
		})
	}
	for _, ex := range el.ChildrenNamed("excludeFolder") {
		ce.ExcludeFolders = append(ce.ExcludeFolders, ex.AttrOr("url", ""))
	}
	for _, ex := range el.ChildrenNamed("excludePattern") {
		ce.ExcludePatterns = append(ce.ExcludePatterns, ex.AttrOr("pattern", ""))
	}
	return ce
}

// hasAttr treats a present attribute as set regardless of value, which is how
// exported="" is written.
func hasAttr(el *xmldoc.Element, name string) bool {
	_, ok := el.Attr(name)
	return ok
}

// SetSdkReference binds an SDK reference in table.
func SetSdkReference(table *model.SdkReferencesTable, name string, sdkType model.SdkType) {
	table.Set(model.SdkReference{Name: name, Type: sdkType})
}
