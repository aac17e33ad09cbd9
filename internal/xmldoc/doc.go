// Package xmldoc reads the XML descriptor files of a project (.ipr, .iml and
// the per-concern files under .idea) into a small generic element tree.
//
// Descriptor components are pluggable, so the tree is deliberately untyped:
// the serialization package and registered extensions pick out the elements
// they understand and ignore the rest.
package xmldoc
