package core

import "fmt"

// The gateway error taxonomy. Every remote failure is one of these three,
// carrying the operation name and, when the server answered at all, the HTTP
// status. A zero Status means the request never completed.

// FetchError reports a failed list or get-one operation.
type FetchError struct {
	Op     string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	return opError("fetch", e.Op, e.Status, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// SaveError reports a failed create or update operation.
type SaveError struct {
	Op     string
	Status int
	Err    error
}

func (e *SaveError) Error() string {
	return opError("save", e.Op, e.Status, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// DeleteError reports a failed delete operation.
type DeleteError struct {
	Status int
	Err    error
}

func (e *DeleteError) Error() string {
	return opError("delete", "delete", e.Status, e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }

func opError(kind, op string, status int, err error) string {
	switch {
	case err != nil:
		return fmt.Sprintf("%s failed (%s): %v", kind, op, err)
	case status != 0:
		return fmt.Sprintf("%s failed (%s): unexpected status %d", kind, op, status)
	default:
		return fmt.Sprintf("%s failed (%s)", kind, op)
	}
}
