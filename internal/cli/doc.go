// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It merges
// the optional HCL configuration file with flags and drives the app package.
package cli
