// Package registry is the extension registry the loader consults to find the
// parser for a module type, a project-level component, a facet type or an
// SDK type.
//
// A Registry is an explicit object built once at application start: each
// configured Extension registers its serializers into it, the registry is
// validated and frozen, and from then on it is a read-only lookup table that
// every loader worker shares without locking. There is no package-level
// instance; the application injects the registry into the loader.
//
// Lookups never fail for module types. A type id without a registered
// serializer resolves to PlainModuleSerializer, so descriptors written by
// newer or plugin-extended tools still load.
package registry
