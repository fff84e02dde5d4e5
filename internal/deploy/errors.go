package deploy

import "fmt"

// ValidationError reports missing or malformed user-supplied fields. It is
// returned before any external process is spawned and is not recorded in
// history.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// PreconditionError reports a required external resource (key material,
// script, contract source) that is missing. Nothing is spawned when one is
// raised.
type PreconditionError struct {
	Resource string
	Path     string
}

func (e *PreconditionError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s is not configured", e.Resource)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Path)
}
