package savedlist

import "errors"

// MissingContainerError reports that no array in the payload holds a
// place-shaped entry. It usually means the upstream format drifted past
// the recognized heuristics; it is fatal and not retried.
type MissingContainerError struct {
	Nodes int
}

func (e *MissingContainerError) Error() string {
	return "savedlist: no places container found in payload"
}

// Permanent marks the error as not retryable.
func (e *MissingContainerError) Permanent() bool { return true }

// IsMissingContainer reports whether err is (or wraps) a MissingContainerError.
func IsMissingContainer(err error) bool {
	var mc *MissingContainerError
	return errors.As(err, &mc)
}
