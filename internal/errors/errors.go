// Package errors provides the typed error taxonomy for the duplicate-grouping
// pipeline (§7): validation failures, per-block extraction failures, per-group
// rejections, and internal invariant violations each get their own type so
// that callers (cmd/dupgrouper) can map them to the right exit code without
// string-matching error messages.
package errors

import (
	"fmt"
	"time"
)

// ValidationError represents a malformed or out-of-bounds input document
// (§6, §7). Detected before any CodeBlock is constructed; callers should
// exit with status 2.
type ValidationError struct {
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewValidationError creates a new input-validation error.
func NewValidationError(field, value string, err error) *ValidationError {
	return &ValidationError{
		Field:      field,
		Value:      value,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field %s (value %q): %v", e.Field, e.Value, e.Underlying)
	}
	return fmt.Sprintf("validation error: %v", e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *ValidationError) Unwrap() error {
	return e.Underlying
}

// BlockError represents a per-block extraction failure (§7): the function-name
// fallback read failed, or a match could not be turned into a CodeBlock. These
// are never fatal — the orchestrator logs and skips the offending block.
type BlockError struct {
	BlockID    string
	FilePath   string
	Operation  string
	Underlying error
	Timestamp  time.Time
}

// NewBlockError creates a new per-block error.
func NewBlockError(op, blockID, filePath string, err error) *BlockError {
	return &BlockError{
		BlockID:    blockID,
		FilePath:   filePath,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("block %s: %s failed for %s: %v", e.BlockID, e.Operation, e.FilePath, e.Underlying)
}

// Unwrap returns the underlying error.
func (e *BlockError) Unwrap() error {
	return e.Underlying
}

// GroupError represents a per-group rejection (§7): semantic validation or
// quality-gate rejection. Never fatal — logged at debug and the candidate
// group is dropped.
type GroupError struct {
	Layer      string // "layer1", "layer2", "layer3", "quality"
	Reason     string
	BlockIDs   []string
	Underlying error
}

// NewGroupError creates a new per-group rejection error.
func NewGroupError(layer, reason string, blockIDs []string) *GroupError {
	return &GroupError{
		Layer:    layer,
		Reason:   reason,
		BlockIDs: blockIDs,
	}
}

func (e *GroupError) Error() string {
	return fmt.Sprintf("%s rejected candidate group %v: %s", e.Layer, e.BlockIDs, e.Reason)
}

// Unwrap returns the underlying error, if any.
func (e *GroupError) Unwrap() error {
	return e.Underlying
}

// InternalError represents a programming-bug-grade invariant violation (§7),
// e.g. a group with fewer than two members reaching the emit stage. Callers
// should abort with status 1.
type InternalError struct {
	Invariant  string
	Underlying error
	Timestamp  time.Time
}

// NewInternalError creates a new internal invariant-violation error.
func NewInternalError(invariant string, err error) *InternalError {
	return &InternalError{
		Invariant:  invariant,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal invariant violated (%s): %v", e.Invariant, e.Underlying)
}

// Unwrap returns the underlying error.
func (e *InternalError) Unwrap() error {
	return e.Underlying
}

// MultiError aggregates multiple non-fatal errors collected while the
// pipeline continues past per-item failures (§7).
type MultiError struct {
	Errors []error
}

// NewMultiError creates a new multi-error, dropping any nil entries.
func NewMultiError(errs []error) *MultiError {
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
}

// Unwrap returns all aggregated errors.
func (e *MultiError) Unwrap() []error {
	return e.Errors
}
