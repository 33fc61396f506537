// Package schema defines the source and document wrappers used to carry model
// definitions from their origin (file, fs.FS, URL) into the validator without
// tying callers to a concrete loading strategy.
package schema
