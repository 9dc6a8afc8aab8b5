package ak8963

import "time"

// DeviceID is the identity byte expected from the WHO_AM_I register.
const DeviceID = 0x48

// Register addresses.
const (
	RegWhoAmI   = 0x00 // device identity
	RegInfo     = 0x01
	RegStatus1  = 0x02 // data ready / data overrun flags
	RegHXL      = 0x03 // measurement data, X axis low byte first
	RegHXH      = 0x04
	RegHYL      = 0x05
	RegHYH      = 0x06
	RegHZL      = 0x07
	RegHZH      = 0x08
	RegStatus2  = 0x09 // data error / overflow flags; read ends the cycle
	RegControl  = 0x0A // operating mode
	RegSelfTest = 0x0C
	RegASAX     = 0x10 // factory trim, X axis (fuse-ROM access mode)
	RegASAY     = 0x11
	RegASAZ     = 0x12
)

// Operating modes written to the control register.
const (
	ModePowerDown  = 0x00
	ModeSingle     = 0x01 // one measurement, then automatic power-down
	ModeContinuous = 0x02
	ModeSelfTest   = 0x08
	ModeFuseROM    = 0x0F // exposes the factory trim registers
)

// Status 1 flags.
const (
	status1DataReady   = 0x01
	status1DataOverrun = 0x02
)

// Status 2 flags. The overflow value doubles as a mask on this part family.
const (
	status2DataError = 0x02
	status2Overflow  = 0x03
)

// dataBurstLen is the size of a full data read: six measurement bytes plus
// the trailing status-2 byte fetched in the same burst.
const dataBurstLen = 7

// Chip-mandated settling delays for the initialization sequence. Shortening
// any of them risks reading stale or invalid data.
const (
	powerDownDelay  = 20 * time.Millisecond
	fuseAccessDelay = 10 * time.Millisecond
	trimReadDelay   = 10 * time.Millisecond
)
