package sim

import (
	"github.com/magellan-fc/ak8963/hal"
	"github.com/magellan-fc/ak8963/hal/mpu"
	"github.com/magellan-fc/ak8963/pkg"
)

// userCtrlMasterEnable is the bus-master enable bit in USER_CTRL.
const userCtrlMasterEnable = 0x20

// Controller models the bus-master chip's register file and its slave-0
// pass-through to an attached magnetometer. It implements hal.Transport for
// the controller's own registers, which is exactly what mpu.Bridge consumes.
//
// A transfer is executed when the slave control register is written with the
// enable bit set, provided the bus master has been enabled via USER_CTRL.
// Results land in the external-sensor-data window; a relay failure leaves
// the window untouched, the way a NACKed transfer leaves stale data on the
// real part.
type Controller struct {
	mag *Magnetometer

	slvAddr uint8
	slvReg  uint8
	slvDO   uint8

	userCtrl uint8
	mstCtrl  uint8
	intCfg   uint8

	ext [mpu.ExtSensDataSize]byte

	readErr  error
	writeErr error
}

// compile-time interface check
var _ hal.Transport = (*Controller)(nil)

// NewController returns a controller with the given magnetometer attached
// to its auxiliary bus.
func NewController(mag *Magnetometer) *Controller {
	return &Controller{mag: mag}
}

// FailReads makes every subsequent controller register read fail with err.
// Pass nil to restore normal operation.
func (c *Controller) FailReads(err error) {
	c.readErr = err
}

// FailWrites makes every subsequent controller register write fail with err.
// Pass nil to restore normal operation.
func (c *Controller) FailWrites(err error) {
	c.writeErr = err
}

// MasterEnabled reports whether the bus-master pass-through is active.
func (c *Controller) MasterEnabled() bool {
	return c.userCtrl&userCtrlMasterEnable != 0
}

// ReadRegister reads len(buf) controller registers starting at reg.
// Only the external-sensor-data window has modeled read behavior.
func (c *Controller) ReadRegister(reg uint8, buf []byte) error {
	if c.readErr != nil {
		return c.readErr
	}
	if len(buf) == 0 {
		return pkg.ErrBufferTooSmall
	}
	for i := range buf {
		r := reg + uint8(i)
		if r >= mpu.RegExtSensData00 && r < mpu.RegExtSensData00+mpu.ExtSensDataSize {
			buf[i] = c.ext[r-mpu.RegExtSensData00]
		} else {
			buf[i] = 0
		}
	}
	return nil
}

// WriteRegister writes a single controller register. Writing the slave
// control register with the enable bit set executes the pass-through
// transfer.
func (c *Controller) WriteRegister(reg uint8, value uint8) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	switch reg {
	case mpu.RegI2CSlv0Addr:
		c.slvAddr = value
	case mpu.RegI2CSlv0Reg:
		c.slvReg = value
	case mpu.RegI2CSlv0DO:
		c.slvDO = value
	case mpu.RegUserCtrl:
		c.userCtrl = value
	case mpu.RegI2CMstCtrl:
		c.mstCtrl = value
	case mpu.RegIntPinCfg:
		c.intCfg = value
	case mpu.RegI2CSlv0Ctrl:
		if value&0x80 != 0 {
			c.transfer(value & 0x0F)
		}
	}
	return nil
}

// transfer relays the programmed slave transaction to the magnetometer.
func (c *Controller) transfer(length uint8) {
	if !c.MasterEnabled() || c.mag == nil {
		return
	}
	if c.slvAddr&0x80 != 0 {
		if length == 0 || int(length) > len(c.ext) {
			return
		}
		if err := c.mag.ReadRegister(c.slvReg, c.ext[:length]); err != nil {
			pkg.LogDebug(pkg.ComponentSim, "slave read failed", "reg", c.slvReg, "err", err)
		}
		return
	}
	if err := c.mag.WriteRegister(c.slvReg, c.slvDO); err != nil {
		pkg.LogDebug(pkg.ComponentSim, "slave write failed", "reg", c.slvReg, "err", err)
	}
}
