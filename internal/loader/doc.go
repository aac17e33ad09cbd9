// Package loader assembles a model.Project from an .ipr file or an .idea
// directory. Module descriptors are parsed concurrently on a shared worker
// pool and attached to the project strictly in the order modules.xml
// declares them.
//
// A Loader holds no per-load state and may run several loads at once.
package loader
