// Package ak8963 implements a driver for the AK8963 three-axis
// magnetometer, reached either directly on the primary bus or through an
// MPU-9250 class controller acting as bus master for the sensor.
//
// # Architecture
//
// The driver is organized into several layers:
//
//   - Driver holds the transport binding, calibration gains, and the read
//     protocol state
//   - Detection probes both bus paths for the device identity and binds the
//     matching transport
//   - The hal subpackages provide the concrete transports: direct
//     (hal/i2c), bridged (hal/mpu), and simulated (hal/sim)
//
// # Read Protocols
//
// Two read protocols are supported, selected at construction time:
//
//   - Synchronous: a blocking status-check-then-fetch sequence for the
//     direct path, bounded by one settling interval per call
//   - Asynchronous: a three-state, call-to-call resumable machine for the
//     bridged path, which queues split-phase reads and never blocks the
//     caller while a settling interval runs down
//
// The asynchronous protocol exists because the bridged path cannot tolerate
// a blocking wait inside a time-critical control loop: a bridged register
// read is only valid after a chip-mandated settling interval, so the driver
// queues the read on one tick and collects it on a later one.
//
// # Soft Conditions
//
// A read that produces no sample is a normal condition, not a failure: the
// device samples at its own rate, and bus faults, data errors, and overflow
// are all reported as sentinel errors from
// [github.com/magellan-fc/ak8963/pkg] while the driver remains usable.
//
// # Example
//
//	drv, err := ak8963.Detect(ctx, ak8963.DetectOpts{
//	    Direct:  dev,    // hal/i2c transport, or nil
//	    Bridged: bridge, // hal/mpu bridge, or nil
//	})
//	if err != nil {
//	    // no sensor on either path
//	}
//	if err := drv.Init(ctx); err != nil {
//	    // calibration incomplete; driver still usable with unity gains
//	}
//
//	for range tick {
//	    sample, err := drv.Read()
//	    if err != nil {
//	        continue // no sample this tick
//	    }
//	    use(sample.X, sample.Y, sample.Z)
//	}
package ak8963
