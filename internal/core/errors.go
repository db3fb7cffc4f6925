package core

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors for handling decisions. The first four
// categories correspond to phase collaborators and are always recovered via
// the per-phase fallback policy; ErrCatController is fatal to the run.
type ErrorCategory string

const (
	ErrCatGeneration ErrorCategory = "generation" // Planner collaborator failure
	ErrCatRanking    ErrorCategory = "ranking"    // Ranker collaborator failure
	ErrCatExecution  ErrorCategory = "execution"  // Executor collaborator failure
	ErrCatAnalysis   ErrorCategory = "analysis"   // Analysis pipeline failure
	ErrCatController ErrorCategory = "controller" // Defect in the controller itself
	ErrCatValidation ErrorCategory = "validation" // Invalid input
	ErrCatState      ErrorCategory = "state"      // Persistence corruption/conflict
	ErrCatNotFound   ErrorCategory = "not_found"  // Resource not found
	ErrCatConflict   ErrorCategory = "conflict"   // Concurrent modification
	ErrCatInternal   ErrorCategory = "internal"   // Unexpected internal error
)

// DomainError represents a structured error from the domain layer.
type DomainError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Cause    error
	Details  map[string]interface{}
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches a target.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Category == t.Category && e.Code == t.Code
}

// WithCause wraps an underlying error.
func (e *DomainError) WithCause(cause error) *DomainError {
	e.Cause = cause
	return e
}

// WithDetail adds contextual information.
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ErrGeneration creates a planning-phase collaborator error.
func ErrGeneration(code, message string) *DomainError {
	return &DomainError{Category: ErrCatGeneration, Code: code, Message: message}
}

// ErrRanking creates a ranking-phase collaborator error.
func ErrRanking(code, message string) *DomainError {
	return &DomainError{Category: ErrCatRanking, Code: code, Message: message}
}

// ErrExecution creates an execution-phase collaborator error.
func ErrExecution(code, message string) *DomainError {
	return &DomainError{Category: ErrCatExecution, Code: code, Message: message}
}

// ErrAnalysis creates an analysis-phase error.
func ErrAnalysis(code, message string) *DomainError {
	return &DomainError{Category: ErrCatAnalysis, Code: code, Message: message}
}

// ErrController creates a fatal controller error.
func ErrController(code, message string) *DomainError {
	return &DomainError{Category: ErrCatController, Code: code, Message: message}
}

// ErrValidation creates a validation error.
func ErrValidation(code, message string) *DomainError {
	return &DomainError{Category: ErrCatValidation, Code: code, Message: message}
}

// ErrState creates a state error.
func ErrState(code, message string) *DomainError {
	return &DomainError{Category: ErrCatState, Code: code, Message: message}
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) *DomainError {
	return &DomainError{
		Category: ErrCatNotFound,
		Code:     "NOT_FOUND",
		Message:  fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// ErrConflict creates a conflict error.
func ErrConflict(code, message string) *DomainError {
	return &DomainError{Category: ErrCatConflict, Code: code, Message: message}
}

// GetCategory extracts the error category.
func GetCategory(err error) ErrorCategory {
	var domErr *DomainError
	if errors.As(err, &domErr) {
		return domErr.Category
	}
	return ErrCatInternal
}

// IsCategory checks if an error belongs to a category.
func IsCategory(err error, cat ErrorCategory) bool {
	return GetCategory(err) == cat
}

// IsPhaseError reports whether the error belongs to one of the four
// phase-collaborator categories that the controller recovers locally.
func IsPhaseError(err error) bool {
	switch GetCategory(err) {
	case ErrCatGeneration, ErrCatRanking, ErrCatExecution, ErrCatAnalysis:
		return true
	default:
		return false
	}
}

// Predefined error codes
const (
	CodeRunNotFound       = "RUN_NOT_FOUND"
	CodeRunAlreadyActive  = "RUN_ALREADY_ACTIVE"
	CodeReportNotFound    = "REPORT_NOT_FOUND"
	CodeStateCorrupted    = "STATE_CORRUPTED"
	CodeInvalidState      = "INVALID_STATE"
	CodeGeneratorFailed   = "GENERATOR_FAILED"
	CodeRankerFailed      = "RANKER_FAILED"
	CodeExecutorFailed    = "EXECUTOR_FAILED"
	CodeAnalysisFailed    = "ANALYSIS_FAILED"
	CodeControllerDefect  = "CONTROLLER_DEFECT"
	CodeMissingCollab     = "MISSING_COLLABORATOR"
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInvalidRunID      = "INVALID_RUN_ID"
	CodeEmptyTargetURL    = "EMPTY_TARGET_URL"
	CodeInvalidCount      = "INVALID_COUNT"
	CodePersistenceFailed = "PERSISTENCE_FAILED"
)
