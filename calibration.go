package ak8963

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/magellan-fc/ak8963/pkg"
)

// Gain computes the per-axis scale factor from a factory trim byte. It is
// monotonic non-decreasing in the trim byte, ranging over [15.0, 45.0).
func Gain(trim uint8) float64 {
	return ((float64(trim)-128)/256 + 1) * 30
}

// Init runs the one-shot calibration sequence: power down, read the factory
// trim bytes from fuse ROM, derive the per-axis gains, clear any latched
// status, and arm the device for sampling: continuous mode for the
// asynchronous protocol, single-shot for the synchronous one (continuous
// mode would race with the synchronous re-arm logic).
//
// Init must run once after a successful detection, with no read in
// progress. Each step honors the chip-mandated settling delay; the context
// bounds the sequence between steps.
//
// Bus faults do not abort the sequence: the remaining steps still run, and
// the accumulated faults are returned joined. If the trim read failed the
// gains stay at unity, so an uncalibrated driver degrades only in scale.
func (d *Driver) Init(ctx context.Context) error {
	var errs []error

	if err := d.transport.WriteRegister(RegControl, ModePowerDown); err != nil {
		errs = append(errs, fmt.Errorf("power down: %w", err))
	}
	if err := d.sleep(ctx, powerDownDelay); err != nil {
		return errors.Join(append(errs, err)...)
	}

	if err := d.transport.WriteRegister(RegControl, ModeFuseROM); err != nil {
		errs = append(errs, fmt.Errorf("enter fuse mode: %w", err))
	}
	if err := d.sleep(ctx, fuseAccessDelay); err != nil {
		return errors.Join(append(errs, err)...)
	}

	var trim [3]byte
	trimErr := d.transport.ReadRegister(RegASAX, trim[:])
	if trimErr != nil {
		errs = append(errs, fmt.Errorf("read trim: %w", trimErr))
	}
	if err := d.sleep(ctx, trimReadDelay); err != nil {
		return errors.Join(append(errs, err)...)
	}

	if trimErr == nil {
		for i, t := range trim {
			d.gain[i] = Gain(t)
		}
		pkg.LogDebug(pkg.ComponentDriver, "calibration read",
			"trim", trim, "gain", d.gain)
	}

	// Fuse ROM must not remain active during sampling.
	if err := d.transport.WriteRegister(RegControl, ModePowerDown); err != nil {
		errs = append(errs, fmt.Errorf("exit fuse mode: %w", err))
	}
	if err := d.sleep(ctx, trimReadDelay); err != nil {
		return errors.Join(append(errs, err)...)
	}

	// Reading both status registers clears any latched flags.
	var status [1]byte
	if err := d.transport.ReadRegister(RegStatus1, status[:]); err != nil {
		errs = append(errs, fmt.Errorf("clear status 1: %w", err))
	}
	if err := d.transport.ReadRegister(RegStatus2, status[:]); err != nil {
		errs = append(errs, fmt.Errorf("clear status 2: %w", err))
	}

	mode := uint8(ModeSingle)
	if d.protocol == ProtocolAsynchronous {
		mode = ModeContinuous
	}
	if err := d.transport.WriteRegister(RegControl, mode); err != nil {
		errs = append(errs, fmt.Errorf("arm sampling: %w", err))
	}

	pkg.LogInfo(pkg.ComponentDriver, "initialized",
		"protocol", d.protocol, "mode", fmt.Sprintf("0x%02x", mode))
	return errors.Join(errs...)
}

// sleep honors a fixed configuration delay, unless ctx is already done.
func (d *Driver) sleep(ctx context.Context, delay time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.clock.Sleep(delay)
	return nil
}
