package criteria

import "fmt"

// DefinitionError reports a role table that cannot be used for scoring.
type DefinitionError struct {
	Role   string
	Reason string
}

func (e *DefinitionError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("role %q: %s", e.Role, e.Reason)
	}
	return fmt.Sprintf("role definitions: %s", e.Reason)
}
