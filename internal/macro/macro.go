// Package macro expands path placeholders such as $PROJECT_DIR$ and
// $MODULE_DIR$ found in descriptor files.
//
// An Expander is built per load unit (one for the project, one per module)
// and is not safe for concurrent mutation; Expand itself only reads and may be
// called from many goroutines once the Expander is fully configured.
package macro

import (
	"path/filepath"
	"sort"
	"strings"
)

const parentSuffix = "/.."

// Expander rewrites $NAME$ tokens into absolute, system-independent paths.
type Expander struct {
	replacements map[string]string
	keys         []string
}

// New creates an Expander seeded with the given path variables. Variable
// names are given without the surrounding dollar signs.
func New(pathVariables map[string]string) *Expander {
	e := &Expander{replacements: make(map[string]string, len(pathVariables))}
	for name, value := range pathVariables {
		e.put(token(name), normalize(value))
	}
	return e
}

// AddFileHierarchyReplacements binds $name$ to dir and $name$/.. to each of
// dir's ancestors, so "$PROJECT_DIR$/../lib" resolves even though only the
// project directory was registered.
func (e *Expander) AddFileHierarchyReplacements(name, dir string) {
	if dir == "" {
		return
	}
	key := token(name)
	current := normalize(dir)
	for {
		e.put(key, current)
		parent := parentOf(current)
		if parent == current {
			return
		}
		key += parentSuffix
		current = parent
	}
}

// Expand replaces every registered token in s. Tokens without a registered
// substitution are left untouched.
func (e *Expander) Expand(s string) string {
	if e == nil || !strings.Contains(s, "$") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == '$' {
			if key, ok := e.match(s[i:]); ok {
				value := e.replacements[key]
				b.WriteString(value)
				i += len(key)
				if strings.HasSuffix(value, "/") && i < len(s) && s[i] == '/' {
					i++
				}
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// Macros returns the registered tokens, sorted, for diagnostics.
func (e *Expander) Macros() []string {
	out := make([]string, 0, len(e.replacements))
	for k := range e.replacements {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the replacement registered for a variable name.
func (e *Expander) Lookup(name string) (string, bool) {
	v, ok := e.replacements[token(name)]
	return v, ok
}

func (e *Expander) put(key, value string) {
	if _, exists := e.replacements[key]; !exists {
		e.keys = append(e.keys, key)
		// Longest key first: the deepest hierarchy replacement must win over
		// its shorter prefix.
		sort.SliceStable(e.keys, func(i, j int) bool { return len(e.keys[i]) > len(e.keys[j]) })
	}
	e.replacements[key] = value
}

func (e *Expander) match(s string) (string, bool) {
	for _, key := range e.keys {
		if !strings.HasPrefix(s, key) {
			continue
		}
		if strings.HasSuffix(key, parentSuffix) && !boundary(s[len(key):]) {
			continue
		}
		return key, true
	}
	return "", false
}

// boundary reports whether a ".." hierarchy token ends a path segment.
func boundary(rest string) bool {
	return rest == "" || rest[0] == '/' || rest[0] == '!'
}

func token(name string) string {
	return "$" + strings.Trim(name, "$") + "$"
}

func normalize(p string) string {
	p = strings.ReplaceAll(filepath.ToSlash(p), `\`, "/")
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

func parentOf(p string) string {
	idx := strings.LastIndex(p, "/")
	switch {
	case idx < 0:
		return p
	case idx == 0:
		return "/"
	default:
		parent := p[:idx]
		// Windows drive roots keep their trailing slash.
		if strings.HasSuffix(parent, ":") {
			return parent + "/"
		}
		return parent
	}
}
