package contracts

import "errors"

// Errors surfaced by the bridge. All of them are fatal.
var (
	ErrNoDeviceFound       = errors.New("no input port found")
	ErrInvalidSelection    = errors.New("invalid input port selected")
	ErrPortNameUnavailable = errors.New("port name unavailable")
	ErrDeviceBuildFailure  = errors.New("failed to build virtual device")
	ErrConnectionFailure   = errors.New("failed to connect to input port")
	ErrEmissionFailure     = errors.New("failed to emit key event")

	// ErrUnsupportedOS is returned when the operating system has no backend.
	ErrUnsupportedOS = errors.New("unsupported operating system")
)
