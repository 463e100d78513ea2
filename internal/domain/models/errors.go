package models

import "errors"

var (
	ErrValidation      = errors.New("validation error")       // 400
	ErrMissingField    = errors.New("missing required field") // 400
	ErrUnauthorized    = errors.New("unauthorized")           // 401
	ErrSessionNotFound = errors.New("session not found")      // 401
	ErrNotFound        = errors.New("not found")              // 404
	ErrUpstream        = errors.New("platform api error")     // 502
)
