package loader

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/jpsloader/internal/model"
	"github.com/vk/jpsloader/internal/registry"
	"github.com/vk/jpsloader/internal/workerpool"
	"github.com/vk/jpsloader/internal/xmldoc"
	"github.com/vk/jpsloader/plugins/java"
	"github.com/vk/jpsloader/plugins/web"
)

func TestLoadModule(t *testing.T) {
	f := newProjectFixture(t)
	path := f.module("shop", "WEB_MODULE", `<component name="FacetManager">
  <facet type="web" name="Web">
    <configuration>
      <webroots><root url="file://$MODULE_DIR$/webapp" relative="/" /></webroots>
    </configuration>
  </facet>
</component>
<component name="NewModuleRootManager" LANGUAGE_LEVEL="JDK_11">
  <output url="file://$MODULE_DIR$/../out/shop" />
  <content url="file://$MODULE_DIR$">
    <sourceFolder url="file://$MODULE_DIR$/src" isTestSource="false" />
    <sourceFolder url="file://$MODULE_DIR$/test" isTestSource="true" />
    <excludeFolder url="file://$MODULE_DIR$/target" />
  </content>
  <orderEntry type="jdk" jdkName="11" jdkType="JavaSDK" />
  <orderEntry type="module" module-name="core" scope="PROVIDED" />
  <orderEntry type="library" name="servlet-api" level="application" />
  <orderEntry type="module-library" exported="">
    <library name="local">
      <CLASSES><root url="jar://$M2$/local.jar!/" /></CLASSES>
    </library>
  </orderEntry>
</component>`)

	reg := registry.New()
	reg.Install(&java.Module{}, &web.Module{})
	pool := workerpool.New(context.Background(), 1)
	t.Cleanup(pool.Close)
	docs, err := xmldoc.NewLoader(0)
	require.NoError(t, err)

	l := New(reg, pool, docs, WithPathVariables(map[string]string{"M2": "/repo"}))
	assert.True(t, reg.Frozen())

	m, err := l.LoadModule(context.Background(), path, "")
	require.NoError(t, err)

	moduleDir := filepath.ToSlash(filepath.Dir(path))
	assert.Equal(t, "shop", m.Name)
	assert.Equal(t, web.ModuleType, m.Type)
	assert.Equal(t, filepath.ToSlash(path), m.FilePath)
	assert.Equal(t, []string{"file://" + moduleDir}, m.ContentRootURLs())
	assert.Equal(t, []string{"file://" + moduleDir + "/src", "file://" + moduleDir + "/test"}, m.SourceRootURLs(true))
	assert.Equal(t, []string{"file://" + moduleDir + "/target"}, m.ContentEntries[0].ExcludeFolders)

	var kinds []string
	for _, e := range m.OrderEntries {
		kinds = append(kinds, e.Kind())
	}
	assert.Equal(t, []string{"jdk", "module", "library", "library", "sourceFolder"}, kinds)
	assert.Equal(t, model.ScopeProvided, m.OrderEntries[1].(*model.ModuleDependencyEntry).Scope)
	assert.Equal(t, model.LevelApplication, m.OrderEntries[2].(*model.LibraryDependencyEntry).Level)
	assert.True(t, m.OrderEntries[3].(*model.LibraryDependencyEntry).Exported)

	local, ok := m.Libraries().Get("local")
	require.True(t, ok)
	assert.Equal(t, []string{"jar:///repo/local.jar!/"}, local.RootURLs(model.RootClasses))

	settings, ok := java.ModuleSettingsOf(m)
	require.True(t, ok)
	assert.Equal(t, "JDK_11", settings.LanguageLevel)
	assert.Equal(t, "file://"+filepath.ToSlash(f.root)+"/out/shop", settings.OutputURL)

	require.Len(t, m.Facets, 1)
	facet := m.Facets[0]
	assert.Equal(t, filepath.ToSlash(path), facet.ModuleFilePath)
	cfg, ok := facet.Properties.(*web.FacetConfiguration)
	require.True(t, ok)
	assert.Equal(t, "file://"+moduleDir+"/webapp", cfg.WebRoots[0].URL)
}

func TestLoadModule_FacetErrorFailsModule(t *testing.T) {
	f := newProjectFixture(t)
	path := f.module("shop", "WEB_MODULE", `<component name="FacetManager">
  <facet type="web" name="Web">
    <configuration><descriptors><deploymentDescriptor name="web.xml" /></descriptors></configuration>
  </facet>
</component>`)

	reg := registry.New()
	reg.Install(&java.Module{}, &web.Module{})
	pool := workerpool.New(context.Background(), 1)
	t.Cleanup(pool.Close)
	docs, err := xmldoc.NewLoader(0)
	require.NoError(t, err)

	_, err = New(reg, pool, docs).LoadModule(context.Background(), path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load facets")
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "ModulesLoading", ModulesLoading.String())
	assert.Equal(t, "Failed", Failed.String())
	assert.Equal(t, "Unknown", Stage(42).String())
}
