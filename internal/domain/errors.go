package domain

import "fmt"

// EncodingError reports that a corpus build failed for one employee.
type EncodingError struct {
	EmployeeID int
	Err        error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode employee %d: %v", e.EmployeeID, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// GenerationUnavailableError marks a generator failure that the answer flow
// absorbs by falling back to the deterministic composer. Anything the
// generator returns wrapped in this type never surfaces to the caller.
type GenerationUnavailableError struct {
	Provider string
	Err      error
}

func (e *GenerationUnavailableError) Error() string {
	return fmt.Sprintf("generation unavailable (%s): %v", e.Provider, e.Err)
}

func (e *GenerationUnavailableError) Unwrap() error { return e.Err }
