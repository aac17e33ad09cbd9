package macro

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	testCases := []struct {
		name     string
		vars     map[string]string
		dirs     map[string]string
		input    string
		expected string
	}{
		{
			name:     "path variable",
			vars:     map[string]string{"PROJECT_DIR": "/abs/path"},
			input:    "$PROJECT_DIR$/src",
			expected: "/abs/path/src",
		},
		{
			name:     "unknown token is left unchanged",
			vars:     map[string]string{"PROJECT_DIR": "/abs/path"},
			input:    "$UNKNOWN$/x",
			expected: "$UNKNOWN$/x",
		},
		{
			name:     "url with hierarchy macro",
			dirs:     map[string]string{"MODULE_DIR": "/work/proj/app"},
			input:    "file://$MODULE_DIR$/src/main/java",
			expected: "file:///work/proj/app/src/main/java",
		},
		{
			name:     "deepest hierarchy match wins",
			dirs:     map[string]string{"PROJECT_DIR": "/work/proj"},
			input:    "$PROJECT_DIR$/../../opt/lib.jar",
			expected: "/opt/lib.jar",
		},
		{
			name:     "single parent",
			dirs:     map[string]string{"PROJECT_DIR": "/work/proj"},
			input:    "$PROJECT_DIR$/../shared",
			expected: "/work/shared",
		},
		{
			name:     "jar url separator",
			vars:     map[string]string{"MAVEN_REPOSITORY": "/home/u/.m2/repository/"},
			input:    "jar://$MAVEN_REPOSITORY$/junit/junit/4.12/junit-4.12.jar!/",
			expected: "jar:///home/u/.m2/repository/junit/junit/4.12/junit-4.12.jar!/",
		},
		{
			name:     "windows separators are normalized",
			vars:     map[string]string{"LIBS": `C:\libs`},
			input:    "$LIBS$/a.jar",
			expected: "C:/libs/a.jar",
		},
		{
			name:     "lone dollar",
			vars:     map[string]string{"X": "/x"},
			input:    "cost $5",
			expected: "cost $5",
		},
		{
			name:     "parent token must end a segment",
			dirs:     map[string]string{"PROJECT_DIR": "/work/proj"},
			input:    "$PROJECT_DIR$/..hidden",
			expected: "/work/proj/..hidden",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := New(tc.vars)
			for name, dir := range tc.dirs {
				e.AddFileHierarchyReplacements(name, dir)
			}
			assert.Equal(t, tc.expected, e.Expand(tc.input))
		})
	}
}

func TestAddFileHierarchyReplacements_RegistersAncestors(t *testing.T) {
	e := New(nil)
	e.AddFileHierarchyReplacements("PROJECT_DIR", "/a/b")

	assert.Equal(t, []string{"$PROJECT_DIR$", "$PROJECT_DIR$/..", "$PROJECT_DIR$/../.."}, e.Macros())

	v, ok := e.Lookup("PROJECT_DIR")
	assert.True(t, ok)
	assert.Equal(t, "/a/b", v)
}

func TestExpand_NilExpander(t *testing.T) {
	var e *Expander
	assert.Equal(t, "$X$", e.Expand("$X$"))
}
