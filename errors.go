package eewl

import "errors"

// Sentinel errors for the wear-leveling engine. Callers should use
// errors.Is against these rather than comparing strings.
var (
	// ErrConfigInvalid is returned by New when the region geometry does
	// not fit the device, or N < 2.
	ErrConfigInvalid = errors.New("eewl: invalid region configuration")

	// ErrModeDisabled is the value Push panics with on a region
	// constructed with WearLevel=false, and is returned by Peek on such a
	// region and by ReadAt/WriteAt on a wear-leveled one. Open never
	// returns it: on a passthrough region Open succeeds without scanning.
	ErrModeDisabled = errors.New("eewl: wear-leveling is disabled for this region")

	// ErrNotOpen is returned when an operation that requires a
	// completed Open() is called beforehand.
	ErrNotOpen = errors.New("eewl: region has not been opened")

	// ErrCorrupt is returned by Open when the scanner can't find a
	// break in the sequence, or exhausts all N slots during torn-write
	// recovery without finding a valid CRC.
	ErrCorrupt = errors.New("eewl: region is corrupt")

	// ErrDeviceIO wraps an error surfaced by the Device adapter.
	ErrDeviceIO = errors.New("eewl: device i/o error")
)
