package ak8963

import (
	"context"

	"github.com/magellan-fc/ak8963/hal"
	"github.com/magellan-fc/ak8963/pkg"
)

// DetectOpts names the bus paths to probe. Either path may be nil.
type DetectOpts struct {
	// Direct is the primary-bus transport, tried first.
	Direct hal.Transport

	// Bridged is the bus-master bridge, tried if the direct probe fails.
	// Its pass-through is configured as part of the probe.
	Bridged hal.Bridge

	// Clock provides time for the driver's initialization delays.
	// Defaults to hal.SystemClock.
	Clock hal.Clock
}

// Detect probes the configured bus paths for the device identity and
// returns a driver bound to the first path that matches. The direct path is
// probed before the bridged path, so it wins when both would match.
//
// A failed detection returns pkg.ErrNoDevice and is terminal for this boot
// cycle: there is no re-probing, and Init or Read must not be called
// without a successful detection.
func Detect(ctx context.Context, opts DetectOpts) (*Driver, error) {
	if opts.Direct != nil {
		var id [1]byte
		err := opts.Direct.ReadRegister(RegWhoAmI, id[:])
		if err == nil && id[0] == DeviceID {
			pkg.LogInfo(pkg.ComponentDetect, "magnetometer found", "path", "direct")
			return New(opts.Direct, Opts{Protocol: ProtocolSynchronous, Clock: opts.Clock})
		}
		pkg.LogDebug(pkg.ComponentDetect, "direct probe failed",
			"id", id[0], "err", err)
	}

	if opts.Bridged != nil {
		if err := opts.Bridged.EnableMaster(ctx); err != nil {
			pkg.LogDebug(pkg.ComponentDetect, "bridge configuration failed", "err", err)
			return nil, pkg.ErrNoDevice
		}
		var id [1]byte
		err := opts.Bridged.ReadRegister(RegWhoAmI, id[:])
		if err == nil && id[0] == DeviceID {
			pkg.LogInfo(pkg.ComponentDetect, "magnetometer found", "path", "bridged")
			return New(opts.Bridged, Opts{Protocol: ProtocolAsynchronous, Clock: opts.Clock})
		}
		pkg.LogDebug(pkg.ComponentDetect, "bridged probe failed",
			"id", id[0], "err", err)
	}

	return nil, pkg.ErrNoDevice
}
