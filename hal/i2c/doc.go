// Package i2c implements the direct-path transport over a periph.io I2C bus.
//
// The sensor is addressed directly on the primary bus: a register read is a
// write of the register index followed by a read of the payload in one
// transaction, and a register write is a two-byte write.
//
// # Usage
//
// With an already-open bus (or a test double such as i2ctest.Playback):
//
//	dev := i2c.New(bus, i2c.DefaultAddr)
//
// On Linux, Open resolves and opens a bus by name via the periph host
// registry:
//
//	dev, err := i2c.Open("/dev/i2c-1", i2c.DefaultAddr)
//	if err != nil {
//	    // no such bus, or no permission
//	}
//	defer dev.Close()
package i2c
