package service

import (
	"errors"
	"fmt"
)

var ErrNotSingle = errors.New("expected exactly one row")

// RemoteQueryError is returned whenever the remote store reports a failure.
// The cause is carried along but never interpreted.
type RemoteQueryError struct {
	Op    string
	Table string
	Err   error
}

func (e *RemoteQueryError) Error() string {
	return fmt.Sprintf("remote %s on %s failed: %v", e.Op, e.Table, e.Err)
}

func (e *RemoteQueryError) Unwrap() error {
	return e.Err
}

func remoteErr(op, table string, err error) error {
	return &RemoteQueryError{Op: op, Table: table, Err: err}
}
