package sim

import (
	"time"

	"github.com/magellan-fc/ak8963/hal"
	"github.com/magellan-fc/ak8963/pkg"
)

// The simulated sensor's register map. The model owns its own copy of the
// chip's layout so it stays usable as a stand-in for the real part without
// depending on any driver package.
const (
	regWIA    = 0x00 // device identity
	regInfo   = 0x01
	regST1    = 0x02 // status 1: data ready / data overrun
	regHXL    = 0x03 // measurement data, X low byte first
	regST2    = 0x09 // status 2: data error / overflow; read completes the cycle
	regCNTL   = 0x0A // operating mode
	regASAX   = 0x10 // factory trim, X axis (fuse-ROM access mode only)
	regASAZ   = 0x12
	registers = 0x13 // size of the modeled register file
)

// DeviceID is the identity byte returned from the WHO_AM_I register.
const DeviceID = 0x48

// Operating modes accepted by the control register.
const (
	ModePowerDown   = 0x00
	ModeSingle      = 0x01
	ModeContinuous1 = 0x02
	ModeContinuous2 = 0x06
	ModeSelfTest    = 0x08
	ModeFuseROM     = 0x0F
)

// Status 1 flags.
const (
	Status1DataReady   = 0x01
	Status1DataOverrun = 0x02
)

// Status 2 fault values for injection with SetStatus2.
const (
	Status2DataError = 0x02
	Status2Overflow  = 0x03
)

// DefaultMeasureTime is the simulated measurement duration.
const DefaultMeasureTime = 8 * time.Millisecond

// MagOpts holds magnetometer model options.
type MagOpts struct {
	// Trim holds the per-axis factory trim bytes exposed in fuse-ROM mode.
	// A zero value defaults to {128, 128, 128} (unity adjustment).
	Trim [3]uint8

	// MeasureTime is the time a measurement takes to complete.
	// Defaults to DefaultMeasureTime.
	MeasureTime time.Duration
}

// Magnetometer is a register-accurate software model of the sensor.
// It implements hal.Transport, so it can also serve as a direct-path device.
type Magnetometer struct {
	clock       hal.Clock
	measureTime time.Duration
	trim        [3]uint8

	mode      uint8
	field     [3]int16 // raw counts reported by the next measurement
	data      [6]byte  // latched measurement bytes, little-endian per axis
	drdy      bool
	dor       bool
	measuring bool
	readyAt   time.Time

	st2      uint8 // injected status-2 fault value
	readErr  error
	writeErr error
}

// compile-time interface check
var _ hal.Transport = (*Magnetometer)(nil)

// NewMagnetometer returns a powered-down magnetometer model.
func NewMagnetometer(clock hal.Clock, opts MagOpts) *Magnetometer {
	if opts.Trim == [3]uint8{} {
		opts.Trim = [3]uint8{128, 128, 128}
	}
	if opts.MeasureTime == 0 {
		opts.MeasureTime = DefaultMeasureTime
	}
	return &Magnetometer{
		clock:       clock,
		measureTime: opts.MeasureTime,
		trim:        opts.Trim,
	}
}

// SetField programs the raw counts the next measurements will report.
func (m *Magnetometer) SetField(x, y, z int16) {
	m.field = [3]int16{x, y, z}
}

// SetStatus2 injects a status-2 fault value returned with every measurement
// until cleared with SetStatus2(0).
func (m *Magnetometer) SetStatus2(v uint8) {
	m.st2 = v
}

// FailReads makes every subsequent register read fail with err.
// Pass nil to restore normal operation.
func (m *Magnetometer) FailReads(err error) {
	m.readErr = err
}

// FailWrites makes every subsequent register write fail with err.
// Pass nil to restore normal operation.
func (m *Magnetometer) FailWrites(err error) {
	m.writeErr = err
}

// Mode returns the current operating mode.
func (m *Magnetometer) Mode() uint8 {
	m.refresh()
	return m.mode
}

// refresh completes any measurement whose time has elapsed.
func (m *Magnetometer) refresh() {
	now := m.clock.Now()
	if !m.measuring || now.Before(m.readyAt) {
		return
	}
	if m.drdy {
		m.dor = true
	}
	m.latch()
	m.drdy = true
	switch m.mode {
	case ModeContinuous1, ModeContinuous2:
		// Completions the caller never observed count as overruns.
		if now.Sub(m.readyAt) >= m.measureTime {
			m.dor = true
		}
		m.readyAt = now.Add(m.measureTime)
	default:
		// Single-shot measurements return the device to power-down.
		m.measuring = false
		m.mode = ModePowerDown
	}
}

// latch copies the programmed field into the data registers.
func (m *Magnetometer) latch() {
	for axis, v := range m.field {
		m.data[2*axis] = byte(uint16(v))
		m.data[2*axis+1] = byte(uint16(v) >> 8)
	}
}

// register returns the current value of a single register.
func (m *Magnetometer) register(reg uint8) uint8 {
	switch {
	case reg == regWIA:
		return DeviceID
	case reg == regInfo:
		return 0
	case reg == regST1:
		var v uint8
		if m.drdy {
			v |= Status1DataReady
		}
		if m.dor {
			v |= Status1DataOverrun
		}
		return v
	case reg >= regHXL && reg < regST2:
		return m.data[reg-regHXL]
	case reg == regST2:
		return m.st2
	case reg == regCNTL:
		return m.mode
	case reg >= regASAX && reg <= regASAZ:
		// Trim bytes are only exposed in fuse-ROM access mode.
		if m.mode == ModeFuseROM {
			return m.trim[reg-regASAX]
		}
		return 0
	default:
		return 0
	}
}

// ReadRegister reads len(buf) bytes starting at reg. A read that covers the
// status-2 register completes the measurement cycle: the ready and overrun
// flags are cleared.
func (m *Magnetometer) ReadRegister(reg uint8, buf []byte) error {
	if m.readErr != nil {
		return m.readErr
	}
	if len(buf) == 0 {
		return pkg.ErrBufferTooSmall
	}
	m.refresh()
	for i := range buf {
		r := reg + uint8(i)
		if r >= registers {
			buf[i] = 0
			continue
		}
		buf[i] = m.register(r)
	}
	if reg <= regST2 && int(reg)+len(buf) > regST2 {
		m.drdy = false
		m.dor = false
	}
	return nil
}

// WriteRegister writes a single byte to reg. Only the control register has
// modeled behavior; other writes are accepted and ignored.
func (m *Magnetometer) WriteRegister(reg uint8, value uint8) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	if reg != regCNTL {
		return nil
	}
	m.refresh()
	m.mode = value
	switch value {
	case ModeSingle, ModeContinuous1, ModeContinuous2:
		m.measuring = true
		m.readyAt = m.clock.Now().Add(m.measureTime)
	default:
		m.measuring = false
	}
	return nil
}
