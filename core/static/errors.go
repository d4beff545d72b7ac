package static

import "errors"

var (
	// ErrInvalidArgument is the panic value (wrapped) for composition calls
	// with a missing builder, missing options or a malformed request path.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrFileVanished is returned when a file found during lookup is gone by the time it is sent.
	ErrFileVanished = errors.New("file disappeared before it could be sent")
)
