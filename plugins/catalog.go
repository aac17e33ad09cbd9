// Package plugins is the catalog of extensions compiled into the binary.
package plugins

import (
	"fmt"
	"strings"

	"github.com/vk/jpsloader/internal/registry"
	"github.com/vk/jpsloader/plugins/devkit"
	"github.com/vk/jpsloader/plugins/java"
	"github.com/vk/jpsloader/plugins/python"
	"github.com/vk/jpsloader/plugins/web"
)

// bundled is the definitive list of extensions, in installation order.
var bundled = []registry.Extension{
	&java.Module{},
	&devkit.Module{},
	&web.Module{},
	&python.Module{},
}

// Catalog maps extension names to the bundled extensions.
func Catalog() map[string]registry.Extension {
	out := make(map[string]registry.Extension, len(bundled))
	for _, ext := range bundled {
		out[ext.Name()] = ext
	}
	return out
}

// Names returns the bundled extension names in installation order.
func Names() []string {
	out := make([]string, len(bundled))
	for i, ext := range bundled {
		out[i] = ext.Name()
	}
	return out
}

// Resolve returns the extensions for names, in the given order. An empty
// list selects every bundled extension.
func Resolve(names []string) ([]registry.Extension, error) {
	if len(names) == 0 {
		out := make([]registry.Extension, len(bundled))
		copy(out, bundled)
		return out, nil
	}

	catalog := Catalog()
	seen := make(map[string]bool, len(names))
	var out []registry.Extension
	var unknown []string
	for _, name := range names {
		ext, ok := catalog[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, ext)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown extensions: %s (available: %s)", strings.Join(unknown, ", "), strings.Join(Names(), ", "))
	}
	return out, nil
}
