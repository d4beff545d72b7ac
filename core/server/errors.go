package server

import "errors"

var (
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrListen               = errors.New("failed to listen")
	ErrServe                = errors.New("HTTP server error")
	ErrShutdown             = errors.New("HTTP shutdown error")
	ErrMissingAddress       = errors.New("server address is required")
	ErrLoadCertificate      = errors.New("failed to load certificate")
)
