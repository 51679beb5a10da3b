package progcache

import (
	"errors"
	"fmt"
)

// FailureKind classifies a producer failure. Stale serving is permitted only
// for kinds present in Options.StaleOn; the match is a strict allow-list.
type FailureKind string

// ProducerError carries the kind tag alongside the underlying error so the
// decorator can match failures against the allow-list without relying on
// concrete error types.
type ProducerError struct {
	Kind FailureKind
	Err  error
}

func (e *ProducerError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ProducerError) Unwrap() error { return e.Err }

// Tag wraps err with a failure kind. Returns nil when err is nil so producers
// can tag unconditionally on their return path.
func Tag(kind FailureKind, err error) error {
	if err == nil {
		return nil
	}
	return &ProducerError{Kind: kind, Err: err}
}

// KindOf reports the failure kind carried anywhere in err's chain.
func KindOf(err error) (FailureKind, bool) {
	var pe *ProducerError
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return "", false
}
