package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned for a blank query. Callers should show the listing.
	ErrEmpty = errors.New("empty query")
	// ErrNotFound is returned when neither the exact nor the substring pass matched.
	ErrNotFound = errors.New("item not found")
	// ErrServiceUnavailable is returned for any request while no catalog is loaded.
	ErrServiceUnavailable = errors.New("market data is currently unavailable")
)

// Reason classifies why a catalog load failed.
type Reason string

const (
	ReasonUnreadable Reason = "unreadable"
	ReasonMalformed  Reason = "malformed"
	ReasonSchema     Reason = "schema"
)

// LoadError reports a failed catalog load. Index and Field are only set for
// schema violations.
type LoadError struct {
	Reason Reason
	Source string
	Index  int
	Field  string
	Err    error
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("load catalog from %s: %s", e.Source, e.Reason)
	if e.Reason == ReasonSchema {
		if e.Err == nil {
			msg += fmt.Sprintf(": record %d: missing %s", e.Index, e.Field)
		} else {
			msg += fmt.Sprintf(": record %d: %s", e.Index, e.Field)
		}
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error { return e.Err }

// IsReason reports whether err is a *LoadError with the given reason.
func IsReason(err error, reason Reason) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Reason == reason
}
