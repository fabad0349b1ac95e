package api

import "errors"

var (
	ErrServerStopped       = errors.New("api: the server has stopped")
	ErrServerFailedToStart = errors.New("api: the server failed to start")
)
