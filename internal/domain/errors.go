package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrNoSigner is returned when no signing identity can be resolved
	ErrNoSigner = errors.New("no signer configured")

	// ErrArtifactNotFound is returned when a compiled contract artifact can't be found
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrEmptyBytecode is returned for artifacts without creation bytecode (interfaces, abstract contracts)
	ErrEmptyBytecode = errors.New("artifact has no creation bytecode")

	// ErrMissingMethod is returned when an artifact's ABI lacks a method the deployment calls
	ErrMissingMethod = errors.New("missing ABI method")

	// ErrTransactionFailed is returned when a mined transaction reverted
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrChainIDMismatch is returned when the node reports a different chain than configured
	ErrChainIDMismatch = errors.New("chain ID mismatch")

	// ErrInvalidSummary is returned when a deployment summary is missing an address
	ErrInvalidSummary = errors.New("invalid deployment summary")

	// ErrNetworkRequired is returned when a command needs a network and none was given
	ErrNetworkRequired = errors.New("network is required")
)

// StepError reports the deployment step that failed. Nothing after it was executed.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// FailedStep extracts the failed step from an error chain.
func FailedStep(err error) (Step, bool) {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Step, true
	}
	return "", false
}
