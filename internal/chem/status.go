package chem

import "fmt"

// Error codes carried by Status. Zero always means success.
const (
	NoError = iota
	CodeInvalidEngine
	CodeSetupFailure
	CodeConditionFailure
	CodeStepFailure
	CodeAuxiliaryOutputFailure
)

// Status is the explicit result record of every engine-boundary call.
// A non-zero Code is the universal failure signal; Message is the
// engine's human-readable report, carried verbatim to the caller.
type Status struct {
	Code             int
	Message          string
	Converged        bool
	NewtonIterations int
}

// OK returns a success status.
func OK() *Status {
	return &Status{Code: NoError, Message: "", Converged: true}
}

// Errorf returns a failure status with a formatted message.
func Errorf(code int, format string, args ...any) *Status {
	return &Status{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Failed reports whether the call this status describes failed.
func (s *Status) Failed() bool { return s.Code != NoError }

// Err converts a failed status into an error carrying the engine message
// verbatim. A success status converts to nil.
func (s *Status) Err() error {
	if !s.Failed() {
		return nil
	}
	return fmt.Errorf("engine status %d: %s", s.Code, s.Message)
}
