package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalid      = errors.New("invalid")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

var (
	// ErrAlreadySubscribed is returned by checkout for users who are already pro.
	ErrAlreadySubscribed = fmt.Errorf("%w: already subscribed", ErrInvalid)
	// ErrProRequired guards pro-only reads.
	ErrProRequired = fmt.Errorf("%w: pro subscription required", ErrForbidden)
	// ErrBillingUnavailable means the payment provider is not configured.
	ErrBillingUnavailable = errors.New("billing unavailable")
)
