package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when a client insert or update hits
	// the unique e-mail constraint.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrClientNotFound is returned when the referenced client does not exist,
	// including when an allocation insert violates the client foreign key.
	ErrClientNotFound = errors.New("client was not found")

	// ErrAllocationNotFound is returned when an update or delete targets an
	// allocation id that does not exist.
	ErrAllocationNotFound = errors.New("allocation was not found")

	// ErrAllocationConflict is returned when a concurrent writer inserted the
	// same (client, asset) pair first. The merge is safe to repeat.
	ErrAllocationConflict = errors.New("allocation was inserted concurrently")

	// ErrDuplicateAllocation is returned when an edit renames an allocation to
	// an asset the client already holds.
	ErrDuplicateAllocation = errors.New("client already holds an allocation in this asset")

	// ErrTransient marks failures the database reported as retryable
	// (serialization failure, deadlock, busy database, lost connection).
	ErrTransient = errors.New("transient database error")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when squirrel cannot render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or a statement
	// with a RETURNING clause fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// without a result set fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
