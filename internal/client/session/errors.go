package session

import "fmt"

// RequestError reports an authorized request that the server answered with a
// non-2xx status, other than the 401 handled by the refresh-and-retry path.
// The session is left unchanged.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
}
