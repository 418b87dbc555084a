package document

import "fmt"

// ReadError is returned when a resume cannot be opened or parsed.
type ReadError struct {
	Source string
	Cause  error
}

func (e *ReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("read document %q: %v", e.Source, e.Cause)
	}
	return fmt.Sprintf("read document %q", e.Source)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}
