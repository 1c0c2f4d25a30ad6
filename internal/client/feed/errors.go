package feed

import (
	"errors"
	"fmt"
)

// Feed errors
var (
	// ErrTransport indicates that neither the direct request nor the relay produced a response
	ErrTransport = errors.New("feed transport failed")

	// ErrFormat indicates that the feed returned something other than CSV, usually an HTML page
	ErrFormat = errors.New("feed is not delimited text; publish the sheet to the web as CSV")
)

// StatusError is returned for a non-2xx response from the feed or the relay.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}
