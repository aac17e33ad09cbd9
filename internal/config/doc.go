// Package config defines the runtime configuration of jpsloader and loads it
// from an HCL file. Command-line flags are applied on top of the file by the
// cli package; NewConfig validates the merged result.
package config
