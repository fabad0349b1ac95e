package warden

import (
	"errors"
	"fmt"
)

type ErrNotFound struct {
	model string
}

func NewErrNotFound(model string) ErrNotFound {
	return ErrNotFound{
		model: model,
	}
}

func (err ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found", err.model)
}

type ErrAlreadyExists struct {
	model string
}

func NewErrAlreadyExists(model string) ErrAlreadyExists {
	return ErrAlreadyExists{
		model: model,
	}
}

func (err ErrAlreadyExists) Error() string {
	return fmt.Sprintf("%s already exists", err.model)
}

var (
	ErrGroupNotFound      = NewErrNotFound("group")
	ErrGroupAlreadyExists = NewErrAlreadyExists("group")

	ErrMembershipNotFound      = NewErrNotFound("membership")
	ErrMembershipAlreadyExists = NewErrAlreadyExists("membership")

	ErrPrincipalNotFound      = NewErrNotFound("principal")
	ErrPrincipalAlreadyExists = NewErrAlreadyExists("principal")

	// ErrInvalidAction is a caller error: the requested action is not one
	// of the defined capabilities. It is never converted into a decision.
	ErrInvalidAction = errors.New("warden: invalid action")

	// ErrProvisioningConflict means a single provisioning call declared the
	// same group twice with different permission sets. Nothing is applied.
	ErrProvisioningConflict = errors.New("warden: conflicting group definitions")

	ErrUnauthenticated = errors.New("warden: unauthenticated")

	ErrUnknown = errors.New("warden: unknown error")

	ErrFailedToConnect     = errors.New("warden: failed to connect")
	ErrNoTransportSecurity = errors.New("warden: no transport security set (use warden.WithTLSConfig() to set)")
)
