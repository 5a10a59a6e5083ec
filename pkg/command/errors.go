package command

import "fmt"

// EnvironmentError reports an unmet prerequisite, such as a CLI that is
// older than the command supports.
type EnvironmentError struct {
	Required string
	Found    string
	Err      error
}

func (e *EnvironmentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("environment check failed: %v", e.Err)
	}
	return fmt.Sprintf("stencil %s or newer is required, found %s", e.Required, e.Found)
}

func (e *EnvironmentError) Unwrap() error { return e.Err }
