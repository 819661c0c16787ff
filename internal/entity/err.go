package entity

import "fmt"

// Machine-readable reason codes carried on every user-visible failure.
const (
	ReasonUnauthorized             = "unauthorized"
	ReasonBranchNotFound           = "branch_not_found"
	ReasonReleaseApproved          = "release_approved"
	ReasonReleaseNotApproved       = "release_not_approved"
	ReasonDeploymentAlreadyStarted = "deployment_already_started"
	ReasonNotFound                 = "not_found"
	ReasonExternalUnavailable      = "external_service_unavailable"
	ReasonValidationFailed         = "validation_failed"
	ReasonInternal                 = "internal_server_error"
)

// Error is a failure with a reason code and optional human detail.
// Errors sharing a reason compare equal under errors.Is, so callers can
// match against the sentinels below regardless of detail.
type Error struct {
	Reason string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
	}
	return e.Reason
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Reason == e.Reason
}

// NewError builds an Error with a reason code and human detail.
func NewError(reason, detail string) *Error {
	return &Error{Reason: reason, Detail: detail}
}

// WrapError attaches a reason code to an underlying error.
func WrapError(reason string, err error) *Error {
	return &Error{Reason: reason, Err: err}
}

var (
	ErrUnauthorized             = &Error{Reason: ReasonUnauthorized}
	ErrBranchNotFound           = &Error{Reason: ReasonBranchNotFound}
	ErrReleaseApproved          = &Error{Reason: ReasonReleaseApproved}
	ErrReleaseNotApproved       = &Error{Reason: ReasonReleaseNotApproved}
	ErrDeploymentAlreadyStarted = &Error{Reason: ReasonDeploymentAlreadyStarted}
	ErrNotFound                 = &Error{Reason: ReasonNotFound}
	ErrExternalUnavailable      = &Error{Reason: ReasonExternalUnavailable}
	ErrValidationFailed         = &Error{Reason: ReasonValidationFailed}
	ErrInternal                 = &Error{Reason: ReasonInternal}
)
