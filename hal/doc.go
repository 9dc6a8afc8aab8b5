// Package hal defines the transport abstraction for the ak8963 driver.
//
// The HAL separates the driver's protocol logic from the way the sensor is
// physically reached. The same driver core runs over either path:
//
//   - Direct: the sensor sits on the primary bus and is addressed directly.
//     Implemented by [github.com/magellan-fc/ak8963/hal/i2c].
//   - Bridged: the sensor hangs off the auxiliary bus of a second controller
//     chip, which relays register reads and writes on the driver's behalf.
//     Implemented by [github.com/magellan-fc/ak8963/hal/mpu].
//
// # Design Principles
//
// The HAL is designed to be:
//
//   - Minimal: Only expose operations the driver protocol needs
//   - Generic: No bus-specific assumptions or details
//   - Capability-typed: The driver asks for exactly the interface the
//     selected protocol requires
//
// The driver core implements all sensor protocol logic, leaving the HAL to
// handle only register-level bus interactions.
//
// # Interfaces
//
// [Transport] is the base capability: burst register reads and single-byte
// register writes against a device whose bus address is bound at transport
// construction time.
//
// [QueuedTransport] extends Transport with a split-phase read: StartRead
// issues the request and returns immediately, TimeRemaining reports how much
// of the chip-mandated settling interval is still outstanding, and
// CompleteRead retrieves the result once the interval has elapsed. At most
// one queued read may be pending at a time.
//
// [Clock] abstracts monotonic time and fixed configuration delays so tests
// can drive the settling-interval logic without real sleeps. A
// [SystemClock] backed by the time package is the default.
//
// A simulated sensor HAL for testing is available in
// [github.com/magellan-fc/ak8963/hal/sim].
package hal
