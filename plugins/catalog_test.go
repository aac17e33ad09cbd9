package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/jpsloader/internal/registry"
)

func TestResolve(t *testing.T) {
	testCases := []struct {
		name    string
		input   []string
		want    []string
		wantErr string
	}{
		{name: "empty selects all", input: nil, want: []string{"java", "devkit", "web", "python"}},
		{name: "keeps given order", input: []string{"web", "java"}, want: []string{"web", "java"}},
		{name: "drops repeats", input: []string{"java", "java"}, want: []string{"java"}},
		{name: "unknown", input: []string{"java", "scala", "kotlin"}, wantErr: "unknown extensions: scala, kotlin"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			exts, err := Resolve(tc.input)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			var names []string
			for _, e := range exts {
				names = append(names, e.Name())
			}
			assert.Equal(t, tc.want, names)
		})
	}
}

func TestBundledExtensionsInstallCleanly(t *testing.T) {
	exts, err := Resolve(nil)
	require.NoError(t, err)

	reg := registry.New()
	require.NotPanics(t, func() { reg.Install(exts...) })
	require.NoError(t, reg.Validate())

	assert.Equal(t, Names(), reg.Extensions())
	assert.ElementsMatch(t, []string{"JAVA_MODULE", "PLUGIN_MODULE", "WEB_MODULE", "PYTHON_MODULE"}, reg.ModuleTypes())

	_, known := reg.FindSdkType("IDEA JDK")
	assert.True(t, known)
	_, found := reg.FindFacetSerializer("web")
	assert.True(t, found)
}
