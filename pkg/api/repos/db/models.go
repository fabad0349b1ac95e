package db

import (
	"github.com/docshelf/warden/pkg/warden"
)

const MySQLErrorCodeDuplicateKey = 1062

type id int64

type group struct {
	ID id
	warden.Group
}

type principal struct {
	ID id
	warden.Principal
}

type action struct {
	ID   id
	Name string
}

type permission struct {
	ID id
	warden.Permission
}
