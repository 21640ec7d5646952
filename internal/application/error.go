package app

import "errors"

// ErrIdentifierNotConfigured: сервис собран без классификатора.
var ErrIdentifierNotConfigured = errors.New("identifier is not configured")
