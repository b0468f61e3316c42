package asset

import "fmt"

// LoadFailure reports that a single identifier could not be fetched or
// decoded.
type LoadFailure struct {
	ID  string
	Err error
}

func (e *LoadFailure) Error() string {
	return fmt.Sprintf("loading %s: %v", e.ID, e.Err)
}

func (e *LoadFailure) Unwrap() error {
	return e.Err
}
