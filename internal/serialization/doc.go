// Package serialization turns the standard descriptor components
// (NewModuleRootManager, libraryTable, FacetManager, ArtifactManager,
// ProjectRootManager) into model objects. It knows nothing about files or
// concurrency; the loader hands it already expanded elements.
package serialization
