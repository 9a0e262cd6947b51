package blog

// Operation statuses recorded in the journal.
const (
	OperationSuccess = "success"
	OperationError   = "error"
)

// Journal records console mutations locally so an operator can review what
// was changed from this machine.
type Journal interface {
	// CreateOperation records the start of an operation and returns it with its ID set.
	CreateOperation(op *Operation) error

	// FinishOperation stamps the operation with its final status.
	FinishOperation(id int64, status string) error

	// ListOperations returns up to limit operations, newest first.
	ListOperations(limit int) ([]*Operation, error)

	// Close closes the underlying storage.
	Close() error
}
