package hal

import (
	"context"
	"time"
)

// Transport provides register-level access to a device whose bus address was
// bound when the transport was constructed.
//
// Both operations are synchronous: they return once the bus transaction has
// completed or failed. Implementations are not required to be safe for
// concurrent use; the driver invokes them from a single control-loop context.
type Transport interface {
	// ReadRegister reads len(buf) bytes starting at reg into buf.
	ReadRegister(reg uint8, buf []byte) error

	// WriteRegister writes a single byte to reg.
	WriteRegister(reg uint8, value uint8) error
}

// QueuedTransport extends Transport with a split-phase register read for
// paths where a synchronous read would block a time-critical caller for the
// full settling interval.
//
// The protocol is: StartRead issues the request and returns immediately,
// TimeRemaining reports the portion of the settling interval still
// outstanding, and CompleteRead fetches the result. CompleteRead may block,
// but only for the remaining portion of the interval, which is normally zero
// when the caller has already observed TimeRemaining() == 0.
type QueuedTransport interface {
	Transport

	// StartRead queues an n-byte read starting at reg.
	// Returns pkg.ErrBusy if a queued read is already pending; the pending
	// read is left untouched.
	StartRead(reg uint8, n int) error

	// TimeRemaining returns how much of the settling interval is left for
	// the pending read, clamped to zero. It returns zero when no read is
	// pending.
	TimeRemaining() time.Duration

	// CompleteRead finishes the pending read, copying the result into buf.
	// Returns pkg.ErrNoPending if no read is pending. The pending read is
	// consumed whether or not the completion succeeds.
	CompleteRead(buf []byte) error

	// Flush drops any pending read without completing it, so the next
	// StartRead begins a fresh transaction instead of consuming stale data.
	Flush()
}

// Bridge is a QueuedTransport that reaches the sensor through a second
// controller chip whose bus-master pass-through must be configured before
// the sensor is visible.
type Bridge interface {
	QueuedTransport

	// EnableMaster configures the controller's pass-through registers.
	// It is called once, during detection, before the first bridged read.
	// The sequence includes fixed settling delays; the context bounds them.
	EnableMaster(ctx context.Context) error
}

// Clock abstracts time measurement and fixed configuration delays.
//
// The driver uses Now for settling-interval arithmetic and Sleep only for
// chip-mandated delays during detection and initialization, never on the
// per-tick read path.
type Clock interface {
	// Now returns the current time. Implementations should provide a
	// monotonic reading.
	Now() time.Time

	// Sleep blocks for at least d.
	Sleep(d time.Duration)
}
