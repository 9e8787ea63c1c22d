package domain

import "errors"

var (
	ErrNoAccountSource         = errors.New("no account source configured")
	ErrNoValidAccounts         = errors.New("no valid accounts")
	ErrLoginRejected           = errors.New("login rejected")
	ErrSessionExpired          = errors.New("session expired")
	ErrMalformedUsage          = errors.New("malformed usage data")
	ErrUnsupportedStateVersion = errors.New("unsupported state document version")
	ErrUnknownAccount          = errors.New("account not found in state")
)
