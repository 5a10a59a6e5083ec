package runtime

import "fmt"

// EnvironmentError reports a missing or too old interpreter.
type EnvironmentError struct {
	Runtime  string
	Required string
	Found    string
	Err      error
}

func (e *EnvironmentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s runtime unavailable: %v", e.Runtime, e.Err)
	}
	return fmt.Sprintf("%s %s or newer is required, found %s", e.Runtime, e.Required, e.Found)
}

func (e *EnvironmentError) Unwrap() error { return e.Err }
