package insights

import (
	"errors"
	"fmt"
)

// ErrModelUnavailable means the inference gateway is not configured or did
// not answer the load probe. It is only ever handled internally: callers of
// the pipeline see the fallback output, never this error.
var ErrModelUnavailable = errors.New("model gateway unavailable")

// DecodeError reports a malformed stored embedding string. Unlike model
// failures it is surfaced to the caller: treating bad data as a zero vector
// would corrupt similarity rankings without any signal.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode embedding: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decode embedding: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }
