// Package mpu implements the bridged-path transport through an MPU-9250
// class controller acting as bus master for the magnetometer.
//
// The magnetometer sits on the controller's auxiliary bus and is only
// reachable by programming the controller's slave-0 pass-through registers:
// the controller then performs the transfer itself and deposits the result
// in its external-sensor-data window.
//
// # Synchronous vs Queued Reads
//
// A synchronous bridged read must wait out the controller's transfer time
// before the window holds valid data, which blocks the caller for the full
// settling interval. [Bridge] therefore also implements
// [hal.QueuedTransport]: StartRead programs the pass-through registers and
// returns immediately, and CompleteRead fetches the window once the
// settling interval has elapsed, sleeping only for whatever remainder of
// the interval is still outstanding.
//
// At most one queued read may be pending; starting another returns
// pkg.ErrBusy without disturbing the pending one.
//
// # Usage
//
//	bridge := mpu.New(ctrl, mpu.Opts{Clock: clock})
//	if err := bridge.EnableMaster(ctx); err != nil {
//	    // controller not responding
//	}
//
// where ctrl is a [hal.Transport] for the controller's own register file
// (typically SPI underneath, but any register-level access works).
package mpu
