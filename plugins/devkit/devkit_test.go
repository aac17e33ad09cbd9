package devkit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/jpsloader/internal/xmldoc"
)

func TestLoadProperties(t *testing.T) {
	component, err := xmldoc.Parse(strings.NewReader(`<component name="DevKit.ModuleBuildProperties" url="file:///p/plugin/META-INF/plugin.xml" />`))
	require.NoError(t, err)

	props, err := propertiesSerializer{}.LoadProperties(component)
	require.NoError(t, err)
	require.IsType(t, &Properties{}, props)
	assert.Equal(t, "file:///p/plugin/META-INF/plugin.xml", props.(*Properties).PluginXMLURL)
	assert.Equal(t, ModuleType, props.ModuleType())

	// A plugin module without the component still gets typed properties.
	props, err = propertiesSerializer{}.LoadProperties(nil)
	require.NoError(t, err)
	assert.Equal(t, &Properties{}, props)
}
