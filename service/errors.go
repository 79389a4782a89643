package service

import "errors"

// ErrInvalidInput is wrapped by every validation failure so callers can tell
// bad requests apart from internal errors.
var ErrInvalidInput = errors.New("entrada inválida")
