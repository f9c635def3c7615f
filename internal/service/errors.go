package service

import "errors"

var (
	// ErrManualStartRejected is returned when a manual start hits an oversaturated zone.
	ErrManualStartRejected = errors.New("manual override blocked (oversaturated)")
	// ErrNetworkFailure wraps transport errors and non-2xx responses from the backend.
	ErrNetworkFailure = errors.New("error talking to backend")
	// ErrZoneNotFound is returned for zone ids outside the configured table.
	ErrZoneNotFound = errors.New("zone not found")
	// ErrNotAdjustable is returned when slider or pushed input targets a live zone.
	ErrNotAdjustable = errors.New("zone does not accept manual moisture input")
	// ErrNotPolled is returned by sources that only receive pushed input.
	ErrNotPolled = errors.New("source is not polled")
)
