package domain

import "github.com/cockroachdb/errors"

var (
	ErrCancelled             = errors.New("operation cancelled")
	ErrInputTooLarge         = errors.New("input exceeds maximum allowed size")
	ErrOrchestratorUsed      = errors.New("orchestrator has already run; start a new import")
	ErrInvalidTransition     = errors.New("invalid import state transition")
	ErrInvalidYield          = errors.New("invalid target yield")
	ErrNoDecomposer          = errors.New("no ingredient decomposer configured")
	ErrDecompositionMismatch = errors.New("decomposition result count does not match input")
	ErrInvalidRequest        = errors.New("invalid request")
)
