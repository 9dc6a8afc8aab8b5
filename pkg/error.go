package pkg

import "errors"

// Driver errors.
var (
	// ErrNoDevice indicates the sensor did not identify on any bus path.
	ErrNoDevice = errors.New("device not present")

	// ErrNotReady indicates the sensor has no new sample yet.
	ErrNotReady = errors.New("data not ready")

	// ErrBusy indicates a queued bus transaction is already pending.
	ErrBusy = errors.New("transaction pending")

	// ErrNoPending indicates a completion was requested with no transaction pending.
	ErrNoPending = errors.New("no transaction pending")

	// ErrTransport indicates the underlying bus operation did not complete.
	ErrTransport = errors.New("bus transport failure")

	// ErrDataError indicates the sensor flagged a data read error.
	ErrDataError = errors.New("sensor data error")

	// ErrOverflow indicates a magnetic sensor overflow condition.
	ErrOverflow = errors.New("sensor overflow")

	// ErrProtocol indicates the transport does not support the selected protocol.
	ErrProtocol = errors.New("transport does not support protocol")

	// ErrBufferTooSmall indicates the provided buffer is too small.
	ErrBufferTooSmall = errors.New("buffer too small")

	// ErrInvalidLength indicates a register burst length outside the supported range.
	ErrInvalidLength = errors.New("invalid read length")
)
