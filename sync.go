package ak8963

import (
	"github.com/magellan-fc/ak8963/pkg"
)

// readSync is the direct-path protocol: check status, fetch the data burst,
// re-arm the next single-shot measurement. Each call blocks only for its
// own bus round-trips.
//
// Absence of new data is a normal condition, and the check is
// side-effect-free: no re-arm write is issued until a sample was actually
// produced.
func (d *Driver) readSync() (Sample, error) {
	var buf [dataBurstLen]byte

	if err := d.transport.ReadRegister(RegStatus1, buf[:1]); err != nil {
		return Sample{}, transportErr("status poll", err)
	}
	if buf[0]&status1DataReady == 0 {
		return Sample{}, pkg.ErrNotReady
	}

	if err := d.transport.ReadRegister(RegHXL, buf[:]); err != nil {
		return Sample{}, transportErr("data poll", err)
	}
	if err := status2Err(buf[6]); err != nil {
		return Sample{}, err
	}

	sample := d.decode(buf[:6])

	// A failed re-arm degrades future polls, not this sample.
	if err := d.transport.WriteRegister(RegControl, ModeSingle); err != nil {
		pkg.LogWarn(pkg.ComponentDriver, "re-arm failed", "err", err)
	}
	return sample, nil
}
