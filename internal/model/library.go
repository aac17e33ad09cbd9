package model

import (
	"fmt"
	"strings"
)

// RootType names a kind of library root.
type RootType string

const (
	RootClasses RootType = "CLASSES"
	RootSources RootType = "SOURCES"
	RootJavadoc RootType = "JAVADOC"
)

// ParseRootType maps a case-insensitive name onto one of the root types
// above.
func ParseRootType(s string) (RootType, error) {
	switch t := RootType(strings.ToUpper(s)); t {
	case RootClasses, RootSources, RootJavadoc:
		return t, nil
	}
	return "", fmt.Errorf("unknown root type %q: must be CLASSES, SOURCES or JAVADOC", s)
}

// JarDirectory is a directory whose jars are all roots of the given type.
type JarDirectory struct {
	URL       string
	Recursive bool
	RootType  RootType
}

// Library is a named set of roots.
type Library struct {
	Name string
	// Type is empty for plain Java libraries, "repository" for Maven ones.
	Type           string
	Properties     map[string]string
	Roots          map[RootType][]string
	JarDirectories []JarDirectory
}

// NewLibrary creates an empty library.
func NewLibrary(name, typ string) *Library {
	return &Library{
		Name:  name,
		Type:  typ,
		Roots: make(map[RootType][]string),
	}
}

// AddRoot appends a root URL of the given type.
func (l *Library) AddRoot(t RootType, url string) {
	l.Roots[t] = append(l.Roots[t], url)
}

// RootURLs returns the roots of the given type in declaration order.
func (l *Library) RootURLs(t RootType) []string {
	return l.Roots[t]
}

// LibraryCollection is a name-keyed library table that keeps insertion order.
type LibraryCollection struct {
	order  []string
	byName map[string]*Library
}

// NewLibraryCollection creates an empty table.
func NewLibraryCollection() *LibraryCollection {
	return &LibraryCollection{byName: make(map[string]*Library)}
}

// Put stores l. A library with the same name is replaced in place and
// replaced is reported as true.
func (c *LibraryCollection) Put(l *Library) (replaced bool) {
	if _, exists := c.byName[l.Name]; exists {
		c.byName[l.Name] = l
		return true
	}
	c.order = append(c.order, l.Name)
	c.byName[l.Name] = l
	return false
}

// Get looks a library up by name.
func (c *LibraryCollection) Get(name string) (*Library, bool) {
	l, ok := c.byName[name]
	return l, ok
}

// All returns the libraries in insertion order.
func (c *LibraryCollection) All() []*Library {
	out := make([]*Library, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.byName[name])
	}
	return out
}

// Len reports the number of libraries.
func (c *LibraryCollection) Len() int { return len(c.order) }
