package apperr

import (
	"errors"
	"fmt"
)

// Error carries an HTTP status and a stable machine code alongside the
// wrapped cause. Handlers translate these into response envelopes; services
// construct them at the boundary where a failure class becomes known.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

var (
	// ErrNotFound is the sentinel for missing roadmaps/milestones.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is the sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
)

func Validation(err error) *Error {
	return New(400, "invalid_input", err)
}

func NotFound(err error) *Error {
	if err == nil {
		err = ErrNotFound
	}
	return New(404, "not_found", err)
}

// Provider marks a failed call to the generative model. Generation is
// non-retrying on our side; the user resubmits.
func Provider(err error) *Error {
	return New(500, "provider_failed", err)
}

// MalformedRoadmap marks model output that survived repair but still failed
// structural parsing. Excerpt holds head/tail slices of the offending text
// for internal logs; it never reaches the response body.
type MalformedRoadmap struct {
	Excerpt string
	Err     error
}

func (e *MalformedRoadmap) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed roadmap document: %v", e.Err)
	}
	return "malformed roadmap document"
}

func (e *MalformedRoadmap) Unwrap() error { return e.Err }

func Persistence(err error) *Error {
	return New(500, "persistence_failed", err)
}
