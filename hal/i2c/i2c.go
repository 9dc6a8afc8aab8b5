package i2c

import (
	"fmt"

	"periph.io/x/conn/v3/driver/driverreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"

	"github.com/magellan-fc/ak8963/hal"
	"github.com/magellan-fc/ak8963/pkg"
)

// DefaultAddr is the sensor's fixed 7-bit bus address.
const DefaultAddr = 0x0C

// Dev is a direct-path transport bound to one device address on an I2C bus.
type Dev struct {
	dev i2c.Dev
	bus i2c.BusCloser // non-nil only when opened via Open
}

// compile-time interface check
var _ hal.Transport = (*Dev)(nil)

// New returns a transport for the device at addr on bus.
func New(bus i2c.Bus, addr uint16) *Dev {
	return &Dev{dev: i2c.Dev{Addr: addr, Bus: bus}}
}

// Open opens the named bus from the periph registry and binds the device at
// addr. An empty name selects the first available bus. The caller owns the
// returned transport and must Close it.
func Open(name string, addr uint16) (*Dev, error) {
	if _, err := driverreg.Init(); err != nil {
		return nil, fmt.Errorf("periph init: %w", err)
	}
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open bus %q: %w", name, err)
	}
	pkg.LogDebug(pkg.ComponentBus, "opened i2c bus", "name", bus.String(), "addr", addr)
	return &Dev{
		dev: i2c.Dev{Addr: addr, Bus: bus},
		bus: bus,
	}, nil
}

// ReadRegister reads len(buf) bytes starting at reg into buf.
func (d *Dev) ReadRegister(reg uint8, buf []byte) error {
	if len(buf) == 0 {
		return pkg.ErrBufferTooSmall
	}
	if err := d.dev.Tx([]byte{reg}, buf); err != nil {
		return fmt.Errorf("read reg 0x%02x: %w", reg, err)
	}
	return nil
}

// WriteRegister writes a single byte to reg.
func (d *Dev) WriteRegister(reg uint8, value uint8) error {
	if err := d.dev.Tx([]byte{reg, value}, nil); err != nil {
		return fmt.Errorf("write reg 0x%02x: %w", reg, err)
	}
	return nil
}

// Close releases the underlying bus if the transport opened it.
func (d *Dev) Close() error {
	if d.bus == nil {
		return nil
	}
	return d.bus.Close()
}
