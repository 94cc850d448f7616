package service

import "errors"

// Failure taxonomy surfaced by the service layer. Handlers classify with
// errors.Is and map each one to a client message.
var (
	// ErrUnauthorized no session identity and no payload user id.
	ErrUnauthorized = errors.New("unauthorized: login required")
	// ErrInvalidUser payload user id does not exist.
	ErrInvalidUser = errors.New("invalid user id")
	// ErrPersistence the store rejected or failed a read/write.
	ErrPersistence = errors.New("persistence error")
	// ErrInvalidCredentials login failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrWeatherUnavailable never leaves the status aggregator; it only
	// selects the metastation placeholder.
	ErrWeatherUnavailable = errors.New("weather unavailable")
)
