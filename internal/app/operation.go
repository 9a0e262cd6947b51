package app

import "blogctl/internal/blog"

// ConsoleOperation tracks a CLI command that may change blog content.
// Operations are created in memory with ID=0. Only mutating commands
// persist them (giving them an auto-increment ID from the journal).
type ConsoleOperation struct {
	ID         int64
	Operation  string
	Parameters string
	Status     string // blog.OperationSuccess or blog.OperationError
}

// NewConsoleOperation creates a new in-memory console operation.
func NewConsoleOperation(operation, parameters string) *ConsoleOperation {
	return &ConsoleOperation{
		Operation:  operation,
		Parameters: parameters,
		Status:     blog.OperationSuccess,
	}
}

// Persisted returns true if this operation has been saved to the journal.
func (op *ConsoleOperation) Persisted() bool {
	return op.ID != 0
}

// Fail marks the operation as failed. It is recorded as such on Close.
func (op *ConsoleOperation) Fail() {
	op.Status = blog.OperationError
}
