package application

import "errors"

var ErrNotFound = errors.New("not found")
var ErrBadRequest = errors.New("bad request")
var ErrProviderNotConfigured = errors.New("rate provider not configured")
var ErrInvalidRate = errors.New("invalid rate")
