package validator

import "github.com/google/uuid"

// IdentifierGenerator produces identifiers for instances built by
// CreateInstance. Injecting the strategy keeps uniqueness guarantees and
// testability explicit; generated identifiers are not required to be
// cryptographically strong.
type IdentifierGenerator interface {
	NewID() string
}

// IdentifierFunc adapts a plain function to the IdentifierGenerator interface.
type IdentifierFunc func() string

func (f IdentifierFunc) NewID() string {
	return f()
}

// UUIDGenerator is the default IdentifierGenerator, backed by random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
