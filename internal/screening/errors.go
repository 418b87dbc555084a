package screening

import (
	"errors"
	"fmt"
)

// ErrBusy is returned when a screening is started while another one is in flight.
var ErrBusy = errors.New("another screening is in progress")

const (
	FieldApplicantName = "applicant name"
	FieldRole          = "role"
	FieldSource        = "resume file"
)

// MissingInputError reports a request that cannot be screened. It is returned
// before any document is read.
type MissingInputError struct {
	Field string
	Value string
}

func (e *MissingInputError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s %q is not defined", e.Field, e.Value)
	}
	return fmt.Sprintf("%s is required", e.Field)
}
