package service

import "errors"

// Sentinel error kinds for the service.
var (
	ErrNotStarted  = errors.New("service not started")
	ErrNoTactics   = errors.New("no tactics requested")
	ErrPlayerInput = errors.New("player input required")
)
