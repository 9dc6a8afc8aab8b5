package mpu

import (
	"context"
	"fmt"
	"time"

	"github.com/magellan-fc/ak8963/hal"
	"github.com/magellan-fc/ak8963/pkg"
)

// DefaultSlaveAddr is the magnetometer's fixed address on the controller's
// auxiliary bus.
const DefaultSlaveAddr = 0x0C

// DefaultSettle is the chip-mandated minimum time between programming a
// slave transfer and the external-sensor-data window holding a valid result.
const DefaultSettle = 8 * time.Millisecond

// configDelay is the settling time after each pass-through configuration
// write during EnableMaster.
const configDelay = 10 * time.Millisecond

// Opts holds bridge construction options.
type Opts struct {
	// SlaveAddr is the magnetometer's auxiliary-bus address.
	// Defaults to DefaultSlaveAddr.
	SlaveAddr uint8

	// Settle is the settling interval for bridged transfers.
	// Defaults to DefaultSettle.
	Settle time.Duration

	// Clock provides time measurement and delays.
	// Defaults to hal.SystemClock.
	Clock hal.Clock
}

// pendingRead tracks the single in-flight queued transaction.
type pendingRead struct {
	active    bool
	length    int
	startedAt time.Time
}

// Bridge relays magnetometer register access through the controller's
// slave-0 pass-through. It implements hal.Bridge.
//
// Bridge is not safe for concurrent use: the pass-through registers are a
// single shared resource, and the driver invokes the bridge from one
// control-loop context only.
type Bridge struct {
	ctrl    hal.Transport
	clock   hal.Clock
	slave   uint8
	settle  time.Duration
	pending pendingRead
}

// compile-time interface check
var _ hal.Bridge = (*Bridge)(nil)

// New returns a bridge that programs the controller reached via ctrl.
func New(ctrl hal.Transport, opts Opts) *Bridge {
	if opts.SlaveAddr == 0 {
		opts.SlaveAddr = DefaultSlaveAddr
	}
	if opts.Settle == 0 {
		opts.Settle = DefaultSettle
	}
	if opts.Clock == nil {
		opts.Clock = hal.SystemClock{}
	}
	return &Bridge{
		ctrl:   ctrl,
		clock:  opts.Clock,
		slave:  opts.SlaveAddr,
		settle: opts.Settle,
	}
}

// Settle returns the bridge's settling interval.
func (b *Bridge) Settle() time.Duration {
	return b.settle
}

// EnableMaster configures the controller's pass-through registers: clear
// interrupts on any read, multi-master 400 kHz clock, and bus-master enable.
// Each write is followed by a fixed settling delay, interruptible via ctx.
func (b *Bridge) EnableMaster(ctx context.Context) error {
	steps := []struct {
		reg   uint8
		value uint8
	}{
		{RegIntPinCfg, intPinClearOnRead},
		{RegI2CMstCtrl, mstCtrlMultiMst},
		{RegUserCtrl, userCtrlMaster},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.ctrl.WriteRegister(step.reg, step.value); err != nil {
			return fmt.Errorf("configure master (reg 0x%02x): %w", step.reg, err)
		}
		b.clock.Sleep(configDelay)
	}
	pkg.LogDebug(pkg.ComponentBridge, "bus master enabled", "slave", b.slave)
	return nil
}

// program sets up a slave-0 transfer of n bytes at reg. For reads the
// controller starts the transfer as soon as the control register is written.
func (b *Bridge) program(reg uint8, n int, read bool) error {
	addr := b.slave
	if read {
		addr |= slaveReadFlag
	}
	if err := b.ctrl.WriteRegister(RegI2CSlv0Addr, addr); err != nil {
		return err
	}
	if err := b.ctrl.WriteRegister(RegI2CSlv0Reg, reg); err != nil {
		return err
	}
	return b.ctrl.WriteRegister(RegI2CSlv0Ctrl, slaveEnableFlag|uint8(n))
}

// ReadRegister performs a synchronous bridged read: it programs the
// transfer, waits out the full settling interval, and fetches the
// external-sensor-data window. Prefer the queued variant on the per-tick
// path; this blocks for the whole interval.
func (b *Bridge) ReadRegister(reg uint8, buf []byte) error {
	if len(buf) == 0 {
		return pkg.ErrBufferTooSmall
	}
	if len(buf) > ExtSensDataSize {
		return fmt.Errorf("%w: %d bytes", pkg.ErrInvalidLength, len(buf))
	}
	if err := b.program(reg, len(buf), true); err != nil {
		return fmt.Errorf("bridged read reg 0x%02x: %w", reg, err)
	}
	b.clock.Sleep(b.settle)
	if err := b.ctrl.ReadRegister(RegExtSensData00, buf); err != nil {
		return fmt.Errorf("bridged read reg 0x%02x: %w", reg, err)
	}
	return nil
}

// WriteRegister performs a bridged single-byte write through slave 0.
func (b *Bridge) WriteRegister(reg uint8, value uint8) error {
	if err := b.ctrl.WriteRegister(RegI2CSlv0Addr, b.slave); err != nil {
		return fmt.Errorf("bridged write reg 0x%02x: %w", reg, err)
	}
	if err := b.ctrl.WriteRegister(RegI2CSlv0Reg, reg); err != nil {
		return fmt.Errorf("bridged write reg 0x%02x: %w", reg, err)
	}
	if err := b.ctrl.WriteRegister(RegI2CSlv0DO, value); err != nil {
		return fmt.Errorf("bridged write reg 0x%02x: %w", reg, err)
	}
	if err := b.ctrl.WriteRegister(RegI2CSlv0Ctrl, slaveEnableFlag|1); err != nil {
		return fmt.Errorf("bridged write reg 0x%02x: %w", reg, err)
	}
	return nil
}

// StartRead queues an n-byte read starting at reg. The controller begins
// the transfer immediately; the result is valid once the settling interval
// has elapsed.
func (b *Bridge) StartRead(reg uint8, n int) error {
	if b.pending.active {
		return pkg.ErrBusy
	}
	if n <= 0 || n > ExtSensDataSize {
		return fmt.Errorf("%w: %d bytes", pkg.ErrInvalidLength, n)
	}
	if err := b.program(reg, n, true); err != nil {
		return fmt.Errorf("queue read reg 0x%02x: %w", reg, err)
	}
	b.pending = pendingRead{
		active:    true,
		length:    n,
		startedAt: b.clock.Now(),
	}
	return nil
}

// TimeRemaining returns the unelapsed portion of the settling interval for
// the pending read, clamped to zero.
func (b *Bridge) TimeRemaining() time.Duration {
	if !b.pending.active {
		return 0
	}
	remaining := b.settle - b.clock.Now().Sub(b.pending.startedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CompleteRead finishes the pending read. It sleeps only for whatever
// remainder of the settling interval is still outstanding, then copies the
// external-sensor-data window into buf. The pending read is consumed even
// when the fetch fails.
func (b *Bridge) CompleteRead(buf []byte) error {
	if !b.pending.active {
		return pkg.ErrNoPending
	}
	if remaining := b.TimeRemaining(); remaining > 0 {
		b.clock.Sleep(remaining)
	}
	length := b.pending.length
	b.pending = pendingRead{}

	if len(buf) < length {
		return pkg.ErrBufferTooSmall
	}
	if err := b.ctrl.ReadRegister(RegExtSensData00, buf[:length]); err != nil {
		return fmt.Errorf("complete read: %w", err)
	}
	return nil
}

// Flush drops any pending read so the next StartRead begins a fresh
// transaction.
func (b *Bridge) Flush() {
	if b.pending.active {
		pkg.LogDebug(pkg.ComponentBridge, "flushed pending read", "length", b.pending.length)
	}
	b.pending = pendingRead{}
}
