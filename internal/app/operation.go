package app

import "time"

// Operation tracks one CLI invocation. Commands that change the store mark
// it mutated, which makes Close publish a new snapshot.
type Operation struct {
	ID         string
	Name       string
	Parameters string
	Status     string // "success" or "error"
	mutated    bool
}

// NewOperation creates an operation whose ID is its UTC start time.
func NewOperation(name, parameters string, start time.Time) *Operation {
	return &Operation{
		ID:         start.UTC().Format("20060102T150405Z"),
		Name:       name,
		Parameters: parameters,
		Status:     "success",
	}
}

// MarkMutated records that the store was written.
func (op *Operation) MarkMutated() {
	op.mutated = true
}

// Mutated reports whether anything was written.
func (op *Operation) Mutated() bool {
	return op.mutated
}

// Fail sets the status to "error". Partial writes count as failures.
func (op *Operation) Fail() {
	op.Status = "error"
}
