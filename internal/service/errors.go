package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrPermissionDenied means the caller's role does not allow the
	// operation, or the caller does not own the resource being mutated.
	ErrPermissionDenied = errors.New("permission denied")

	ErrCannotFollowSelf = errors.New("users cannot follow themselves")

	ErrVersionIsNotSpecified = errors.New("application version is not specified")
)
