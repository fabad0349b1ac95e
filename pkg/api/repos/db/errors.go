package db

import "github.com/docshelf/warden/pkg/warden"

var (
	errPrincipalNotFoundDB       = warden.NewErrNotFound("principal")
	errActionNotFoundDB          = warden.NewErrNotFound("action")
	errActionAlreadyExistsInDB   = warden.NewErrAlreadyExists("action")
	errPermissionAlreadyExistsDB = warden.NewErrAlreadyExists("permission")
)
