// Package sim provides a simulated magnetometer and bus-master controller
// for testing and demonstration without hardware.
//
// It plays the role a loopback HAL plays for a protocol stack: the driver
// core and the bridged transport run unmodified against a register-accurate
// software model of the sensor.
//
// # Components
//
//   - [Magnetometer] models the sensor's register file: identity, status,
//     measurement data, control modes (power-down, single, continuous,
//     fuse-ROM access, self-test), factory trim bytes, and the data-ready /
//     data-overrun lifecycle, including the automatic return to power-down
//     after a single-shot measurement. It implements [hal.Transport], so it
//     doubles as a direct-path device.
//   - [Controller] models the bus-master chip's slave-0 pass-through: writes
//     to the slave control register relay a transfer to the attached
//     Magnetometer and deposit results in the external-sensor-data window.
//     It implements [hal.Transport] for its own register file, so
//     [github.com/magellan-fc/ak8963/hal/mpu.Bridge] runs end-to-end
//     against it.
//   - [Clock] is a manual clock whose Sleep advances time instantly,
//     letting tests and examples step through settling intervals without
//     real delays.
//
// # Fault Injection
//
// The magnetometer can be scripted to fail bus operations or to flag
// status-2 fault conditions:
//
//	mag.FailReads(errors.New("bus wedged"))
//	mag.SetStatus2(sim.Status2Overflow)
//
// # Usage
//
//	clock := sim.NewClock()
//	mag := sim.NewMagnetometer(clock, sim.MagOpts{})
//	mag.SetField(100, -200, 300)
//	ctrl := sim.NewController(mag)
//	bridge := mpu.New(ctrl, mpu.Opts{Clock: clock})
package sim
