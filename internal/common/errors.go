// Package common defines shared constants and sentinel errors used across
// dressup components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Ownership-invariant violations (e.g. selecting an avatar the user
	// does not own).
	ErrNotOwned = errors.New("not owned")

	// Validation errors (malformed import payload, missing required fields).
	ErrValidation = errors.New("validation error")

	// Returned by the remote backend variant while it is not configured.
	ErrBackendUnavailable = errors.New("backend not configured")

	// Generation or upload collaborator returned non-success or timed out.
	ErrUpstream = errors.New("upstream failure")
)
