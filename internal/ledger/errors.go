package ledger

import "errors"

var (
	// ErrLedgerWrite matches every *WriteError.
	ErrLedgerWrite = errors.New("ledger write failed")
	// ErrLedgerRead matches every *ReadError.
	ErrLedgerRead = errors.New("ledger read failed")
)

// WriteError reports a failed append. The row may or may not exist remotely.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string { return ErrLedgerWrite.Error() + ": " + e.Err.Error() }
func (e *WriteError) Unwrap() error { return e.Err }
func (e *WriteError) Is(target error) bool {
	return target == ErrLedgerWrite
}

// ReadError reports a failed read of the amount column.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string { return ErrLedgerRead.Error() + ": " + e.Err.Error() }
func (e *ReadError) Unwrap() error { return e.Err }
func (e *ReadError) Is(target error) bool {
	return target == ErrLedgerRead
}
