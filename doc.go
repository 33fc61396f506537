// Package modelval validates structured data against a runtime-loaded model
// definition. A Validator owns one swappable model; callers load a definition,
// then validate arbitrary key/value trees against a named type, list the
// declared types, or build default-valued instances. Validation failures are
// always returned as result values with field-level detail, never as errors.
package modelval
