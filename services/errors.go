package services

import "errors"

// Business error taxonomy. Services return these (possibly wrapped);
// only the handler layer maps them to HTTP statuses.
var (
	// ErrConflict: the subject already holds a non-closed session.
	ErrConflict = errors.New("subject already has an open zone session")

	// ErrPrecondition: a lifecycle gate is not satisfied (empty
	// checklist before activation, open activities before close, ...).
	ErrPrecondition = errors.New("precondition not satisfied")

	// ErrNotFound: referenced session/item/activity absent or not
	// owned by the caller.
	ErrNotFound = errors.New("not found")

	// ErrThrottled: the login rate limiter denied the request.
	ErrThrottled = errors.New("temporarily blocked")

	// ErrTimeExpired: the workday budget ran out; the session has been
	// force-closed.
	ErrTimeExpired = errors.New("TIME_EXPIRED")
)
