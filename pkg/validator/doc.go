// Package validator defines the public contract for model-driven data
// validation: the Validator interface, the result/error value types, and the
// construction options shared by implementations.
package validator
