package cmd

import "errors"

var ErrMigrationsOutOfDate = errors.New("cmd: migrations have not all been applied")
