package memory

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrNotFound is returned when an option ID is unknown to the field
	ErrNotFound = goerr.New("not found")

	// ErrInvalidRequest is returned for malformed requests, mirroring a 400 from the remote API
	ErrInvalidRequest = goerr.New("invalid request")
)
