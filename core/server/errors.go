package server

import "errors"

var (
	// ErrMissingAddress is returned when server address is not provided.
	ErrMissingAddress = errors.New("server address is required")
	// ErrFailedLoadCert is returned when the TLS key pair cannot be loaded.
	ErrFailedLoadCert = errors.New("failed to load certificate")
	// ErrHTTPShutdown is returned when graceful shutdown does not finish in time.
	ErrHTTPShutdown = errors.New("HTTP shutdown error")
)
