package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches a RemoteFetchError caused by a 404 response.
	ErrNotFound = errors.New("remote item not found")

	// ErrInvalidReference is returned for a detail reference that is neither
	// a numeric ID nor an absolute URL.
	ErrInvalidReference = errors.New("reference must be a numeric id or an absolute URL")
)

// RemoteFetchError reports a failed remote request: a transport failure, a
// timeout, a non-2xx status or an undecodable body. StatusCode is 0 when no
// response was received.
type RemoteFetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *RemoteFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *RemoteFetchError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *RemoteFetchError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == 404
}
