package ak8963

import (
	"errors"
	"fmt"
	"math"

	"github.com/magellan-fc/ak8963/hal"
	"github.com/magellan-fc/ak8963/pkg"
)

// Protocol selects how Read collects samples.
type Protocol uint8

// Read protocol options.
const (
	// ProtocolSynchronous polls and fetches in one blocking call,
	// bounded by a single settling interval. Direct-path default.
	ProtocolSynchronous Protocol = iota

	// ProtocolAsynchronous spreads one sample cycle over several
	// non-blocking calls using queued split-phase reads. Bridged-path
	// default; requires a hal.QueuedTransport.
	ProtocolAsynchronous
)

// String returns a human-readable protocol name.
func (p Protocol) String() string {
	switch p {
	case ProtocolSynchronous:
		return "synchronous"
	case ProtocolAsynchronous:
		return "asynchronous"
	default:
		return "unknown"
	}
}

// Sample holds one calibrated measurement, in sensor counts scaled by the
// per-axis gains.
type Sample struct {
	X, Y, Z int16
}

// readState tracks the asynchronous protocol's position in a sample cycle.
type readState uint8

const (
	stateCheckStatus readState = iota // idle; next call queues a status poll
	stateWaitingForStatus             // status poll pending
	stateWaitingForData               // data poll pending
)

// String returns a human-readable state name.
func (s readState) String() string {
	switch s {
	case stateCheckStatus:
		return "check-status"
	case stateWaitingForStatus:
		return "waiting-for-status"
	case stateWaitingForData:
		return "waiting-for-data"
	default:
		return "unknown"
	}
}

// Opts holds driver construction options.
type Opts struct {
	// Protocol selects the read protocol.
	// Defaults to ProtocolSynchronous.
	Protocol Protocol

	// Clock provides time for the fixed initialization delays.
	// Defaults to hal.SystemClock.
	Clock hal.Clock
}

// Driver is a handle to one magnetometer. The transport binding is fixed at
// construction; the per-axis gains are fixed after Init.
//
// Driver is not safe for concurrent use: all operations are expected to be
// invoked from a single control-loop context, and the asynchronous protocol
// relies on call-to-call state rather than any blocking primitive.
type Driver struct {
	transport hal.Transport
	queued    hal.QueuedTransport // non-nil only for ProtocolAsynchronous
	clock     hal.Clock
	protocol  Protocol

	gain  [3]float64
	state readState
}

// New returns a driver bound to the given transport.
//
// ProtocolAsynchronous requires a transport that implements
// hal.QueuedTransport; otherwise New returns pkg.ErrProtocol. Gains default
// to unity until Init runs, so an uncalibrated driver degrades only in
// scale, never in shape.
func New(t hal.Transport, opts Opts) (*Driver, error) {
	d := &Driver{
		transport: t,
		clock:     opts.Clock,
		protocol:  opts.Protocol,
		gain:      [3]float64{1, 1, 1},
	}
	if d.clock == nil {
		d.clock = hal.SystemClock{}
	}
	if opts.Protocol == ProtocolAsynchronous {
		q, ok := t.(hal.QueuedTransport)
		if !ok {
			return nil, fmt.Errorf("%w: %s needs queued reads", pkg.ErrProtocol, opts.Protocol)
		}
		d.queued = q
	}
	return d, nil
}

// Protocol returns the read protocol the driver was constructed with.
func (d *Driver) Protocol() Protocol {
	return d.protocol
}

// Gain returns the per-axis calibration gains.
func (d *Driver) Gain() [3]float64 {
	return d.gain
}

// Read collects one sample if the device has one ready.
//
// On the synchronous protocol the call blocks for at most one bus
// round-trip per phase. On the asynchronous protocol the call never blocks
// while a settling interval runs down; a full sample cycle spans several
// calls, each returning pkg.ErrNotReady until the cycle completes.
//
// Every error is a soft condition: the driver remains usable and the caller
// simply polls again on its next tick.
func (d *Driver) Read() (Sample, error) {
	if d.protocol == ProtocolAsynchronous {
		return d.readAsync()
	}
	return d.readSync()
}

// Reset abandons any in-flight sample cycle. The next Read starts fresh
// from a status poll; a pending queued transaction is flushed so it cannot
// be mistaken for live data later.
func (d *Driver) Reset() {
	d.state = stateCheckStatus
	if d.queued != nil {
		d.queued.Flush()
	}
}

// decode converts six little-endian data bytes into a calibrated sample.
// The sensor's axes are inverted relative to the board frame, hence the
// negation before scaling. Counts near full scale can exceed the sample
// range after scaling; the result saturates rather than wrapping.
func (d *Driver) decode(buf []byte) Sample {
	axis := func(i int) int16 {
		raw := -int16(uint16(buf[2*i]) | uint16(buf[2*i+1])<<8)
		v := float64(raw) * d.gain[i]
		switch {
		case v > math.MaxInt16:
			return math.MaxInt16
		case v < math.MinInt16:
			return math.MinInt16
		}
		return int16(v)
	}
	return Sample{X: axis(0), Y: axis(1), Z: axis(2)}
}

// transportErr marks a failed bus operation so pkg.Classify reports it as a
// transport condition alongside the underlying fault.
func transportErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(pkg.ErrTransport, err))
}

// status2Err maps the status-2 byte to its data-integrity condition. The
// overflow value overlaps the data-error bit on this part family, so a full
// overflow signature wins over the data-error flag alone.
func status2Err(st2 uint8) error {
	switch {
	case st2&status2Overflow == status2Overflow:
		return pkg.ErrOverflow
	case st2&status2DataError != 0:
		return pkg.ErrDataError
	case st2&status2Overflow != 0:
		return pkg.ErrOverflow
	}
	return nil
}
