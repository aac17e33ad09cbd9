package serialization

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/jpsloader/internal/model"
	"github.com/vk/jpsloader/internal/registry"
	"github.com/vk/jpsloader/internal/xmldoc"
)

func parse(t *testing.T, doc string) *xmldoc.Element {
	t.Helper()
	el, err := xmldoc.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return el
}

const moduleDoc = `<module type="JAVA_MODULE" version="4">
  <component name="NewModuleRootManager">
    <content url="file:///p/app">
      <sourceFolder url="file:///p/app/src" isTestSource="false" packagePrefix="com.acme" />
      <sourceFolder url="file:///p/app/test" isTestSource="true" />
      <sourceFolder url="file:///p/app/res" type="java-resource" />
      <excludeFolder url="file:///p/app/out" />
      <excludePattern pattern="*.tmp" />
    </content>
    <orderEntry type="inheritedJdk" />
    <orderEntry type="sourceFolder" forTests="false" />
    <orderEntry type="module" module-name="core" exported="" />
    <orderEntry type="library" name="junit" level="project" scope="TEST" />
    <orderEntry type="something-new" />
    <orderEntry type="module-library">
      <library>
        <CLASSES><root url="jar:///p/lib/local.jar!/" /></CLASSES>
        <SOURCES />
      </library>
    </orderEntry>
    <orderEntry type="jdk" jdkName="17" jdkType="JavaSDK" />
  </component>
</module>`

func TestLoadRootModel_OrderEntriesKeepDeclaredOrder(t *testing.T) {
	root := parse(t, moduleDoc)
	m := model.NewModule("app", model.PlainModuleType, nil)

	err := LoadRootModel(context.Background(), m, root.FindComponent(RootManagerComponent), "", registry.New())
	require.NoError(t, err)

	kinds := make([]string, 0, len(m.OrderEntries))
	for _, e := range m.OrderEntries {
		kinds = append(kinds, e.Kind())
	}
	assert.Equal(t, []string{"inheritedJdk", "sourceFolder", "module", "library", "library", "jdk"}, kinds)

	dep := m.OrderEntries[2].(*model.ModuleDependencyEntry)
	assert.Equal(t, "core", dep.ModuleName)
	assert.True(t, dep.Exported)
	assert.Equal(t, model.ScopeCompile, dep.Scope)

	junit := m.OrderEntries[3].(*model.LibraryDependencyEntry)
	assert.Equal(t, model.ScopeTest, junit.Scope)
	assert.Equal(t, model.LevelProject, junit.Level)

	local := m.OrderEntries[4].(*model.LibraryDependencyEntry)
	assert.Equal(t, "#0", local.LibraryName)
	assert.Equal(t, model.LevelModule, local.Level)
	lib, ok := m.Libraries().Get("#0")
	require.True(t, ok)
	assert.Equal(t, []string{"jar:///p/lib/local.jar!/"}, lib.RootURLs(model.RootClasses))

	inherited := m.OrderEntries[0].(*model.SdkDependencyEntry)
	assert.Equal(t, model.JavaSdkType, inherited.SdkType)

	ref, ok := m.SdkReferences().Get(model.JavaSdkType)
	require.True(t, ok)
	assert.Equal(t, "17", ref.Name)

	require.Len(t, m.ContentEntries, 1)
	ce := m.ContentEntries[0]
	require.Len(t, ce.SourceFolders, 3)
	assert.Equal(t, "com.acme", ce.SourceFolders[0].PackagePrefix)
	assert.True(t, ce.SourceFolders[1].IsTest)
	assert.Equal(t, model.JavaResource, ce.SourceFolders[2].RootType)
	assert.Equal(t, []string{"file:///p/app/out"}, ce.ExcludeFolders)
	assert.Equal(t, []string{"*.tmp"}, ce.ExcludePatterns)
}

func TestLoadRootModel_Defaults(t *testing.T) {
	testCases := []struct {
		name           string
		component      string
		projectSdkType model.SdkType
		wantKinds      []string
		wantSdkType    model.SdkType
	}{
		{
			name:        "missing component",
			wantKinds:   []string{"sourceFolder", "inheritedJdk"},
			wantSdkType: model.JavaSdkType,
		},
		{
			name:           "missing source entry is appended",
			component:      `<component name="NewModuleRootManager"><orderEntry type="inheritedJdk" /></component>`,
			projectSdkType: "Python SDK",
			wantKinds:      []string{"inheritedJdk", "sourceFolder"},
			wantSdkType:    "Python SDK",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var component *xmldoc.Element
			if tc.component != "" {
				component = parse(t, tc.component)
			}
			m := model.NewModule("m", model.PlainModuleType, nil)
			require.NoError(t, LoadRootModel(context.Background(), m, component, tc.projectSdkType, registry.New()))

			var kinds []string
			for _, e := range m.OrderEntries {
				kinds = append(kinds, e.Kind())
				if sdk, ok := e.(*model.SdkDependencyEntry); ok {
					assert.Equal(t, tc.wantSdkType, sdk.SdkType)
				}
				if src, ok := e.(*model.ModuleSourceEntry); ok {
					assert.True(t, src.Synthetic)
				}
			}
			assert.Equal(t, tc.wantKinds, kinds)
		})
	}
}

func TestLoadRootModel_MalformedEntries(t *testing.T) {
	testCases := []struct {
		name    string
		entry   string
		wantErr string
	}{
		{name: "module without name", entry: `<orderEntry type="module" />`, wantErr: "module entry without module-name"},
		{name: "library without name", entry: `<orderEntry type="library" level="project" />`, wantErr: "library entry without name"},
		{name: "jdk without name", entry: `<orderEntry type="jdk" />`, wantErr: "jdk entry without jdkName"},
		{name: "module library without library", entry: `<orderEntry type="module-library" />`, wantErr: "without library element"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			component := parse(t, `<component name="NewModuleRootManager">`+tc.entry+`</component>`)
			m := model.NewModule("m", model.PlainModuleType, nil)
			err := LoadRootModel(context.Background(), m, component, "", registry.New())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadLibraries(t *testing.T) {
	component := parse(t, `<component name="libraryTable">
  <library name="guava" type="repository">
    <properties maven-id="com.google.guava:guava:33.0" />
    <CLASSES><root url="jar://$MAVEN$/guava.jar!/" /></CLASSES>
    <JAVADOC />
    <SOURCES><root url="jar://$MAVEN$/guava-sources.jar!/" /></SOURCES>
    <jarDirectory url="file:///p/libs" recursive="true" />
  </library>
  <library name="guava">
    <CLASSES><root url="jar:///other/guava.jar!/" /></CLASSES>
  </library>
</component>`)

	coll := model.NewLibraryCollection()
	replaced := LoadLibraries(component, coll)
	assert.Equal(t, []string{"guava"}, replaced)
	require.Equal(t, 1, coll.Len())

	lib, _ := coll.Get("guava")
	assert.Equal(t, []string{"jar:///other/guava.jar!/"}, lib.RootURLs(model.RootClasses))

	first := LoadLibrary(component.ChildrenNamed("library")[0])
	assert.Equal(t, "repository", first.Type)
	assert.Equal(t, "com.google.guava:guava:33.0", first.Properties["maven-id"])
	assert.Equal(t, []string{"jar://$MAVEN$/guava-sources.jar!/"}, first.RootURLs(model.RootSources))
	assert.Contains(t, first.Roots, model.RootJavadoc)
	require.Len(t, first.JarDirectories, 1)
	assert.True(t, first.JarDirectories[0].Recursive)
	assert.Equal(t, model.RootClasses, first.JarDirectories[0].RootType)

	assert.Nil(t, LoadLibraries(nil, coll))
}

type webFacet struct{ Root string }

type webFacetSerializer struct{}

func (webFacetSerializer) FacetType() string { return "web" }
func (webFacetSerializer) LoadConfiguration(cfg *xmldoc.Element) (any, error) {
	return &webFacet{Root: cfg.Child("webroots").Child("root").AttrOr("url", "")}, nil
}

type facetExtension struct{}

func (facetExtension) Name() string { return "facets" }
func (facetExtension) Register(r *registry.Registry) {
	r.RegisterFacetType(webFacetSerializer{})
}

func TestLoadFacets(t *testing.T) {
	component := parse(t, `<component name="FacetManager">
  <facet type="web" name="Web">
    <configuration>
      <webroots><root url="file:///p/web" relative="/" /></webroots>
    </configuration>
  </facet>
  <facet type="spring" name="Spring">
    <configuration fileset="main">
      <option name="mode" value="strict" />
      <descriptor url="file:///p/spring.xml" />
    </configuration>
    <facet type="spring-mvc" name="MVC" />
  </facet>
</component>`)

	reg := registry.New()
	reg.Install(facetExtension{})
	m := model.NewModule("app", model.PlainModuleType, nil)
	require.NoError(t, LoadFacets(m, component, "/p/app.iml", reg))

	require.Len(t, m.Facets, 2)
	web := m.Facets[0]
	assert.Equal(t, "/p/app.iml", web.ModuleFilePath)
	require.IsType(t, &webFacet{}, web.Properties)
	assert.Equal(t, "file:///p/web", web.Properties.(*webFacet).Root)

	spring := m.Facets[1]
	assert.Nil(t, spring.Properties)
	assert.Equal(t, map[string]string{
		"fileset":    "main",
		"mode":       "strict",
		"descriptor": "file:///p/spring.xml",
	}, spring.Configuration)
	require.Len(t, spring.SubFacets, 1)
	assert.Equal(t, "MVC", spring.SubFacets[0].Name)
	assert.Equal(t, "/p/app.iml", spring.SubFacets[0].ModuleFilePath)
}

func TestLoadArtifacts(t *testing.T) {
	component := parse(t, `<component name="ArtifactManager">
  <artifact type="jar" name="app:jar" build-on-make="true">
    <output-path>/p/out/artifacts/app</output-path>
    <root id="archive" name="app.jar">
      <element id="module-output" name="app" />
      <element id="directory" name="META-INF">
        <element id="file-copy" path="/p/MANIFEST.MF" />
      </element>
      <element id="library" level="project" name="guava" />
      <element id="extracted-dir" path="/p/x.jar" path-in-jar="/" />
    </root>
  </artifact>
</component>`)

	p := model.NewProject("demo")
	require.NoError(t, LoadArtifacts(p, component))
	require.Len(t, p.Artifacts(), 1)

	a := p.Artifacts()[0]
	assert.Equal(t, "jar", a.Type)
	assert.True(t, a.BuildOnMake)
	assert.Equal(t, "/p/out/artifacts/app", a.OutputPath)
	assert.Equal(t, "app.jar", a.Root.Name)
	assert.Equal(t, []string{"app"}, a.ModuleReferences())

	children := a.Root.Children
	require.Len(t, children, 4)
	assert.Equal(t, "/p/MANIFEST.MF", children[1].Children[0].Path)
	assert.Equal(t, "project", children[2].Level)
	assert.Equal(t, "/", children[3].Attributes["path-in-jar"])

	err := LoadArtifacts(p, parse(t, `<component name="ArtifactManager"><artifact type="jar" /></component>`))
	assert.ErrorContains(t, err, "artifact without name")
}
