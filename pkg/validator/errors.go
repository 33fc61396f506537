package validator

// ModelLoadError reports a failed LoadModel call. It always carries a
// human-readable cause and wraps the underlying parse or consistency error.
type ModelLoadError struct {
	Cause error
}

func (e *ModelLoadError) Error() string {
	if e == nil || e.Cause == nil {
		return "validator: failed to load model"
	}
	return "validator: failed to load model: " + e.Cause.Error()
}

func (e *ModelLoadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
