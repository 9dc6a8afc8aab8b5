package ak8963

import (
	"github.com/magellan-fc/ak8963/pkg"
)

// readAsync is the bridged-path protocol: a three-state machine that
// resumes where the previous call left off.
//
//	checkStatus ──queue status poll──▶ waitingForStatus
//	waitingForStatus ──ready──queue data poll──▶ waitingForData
//	waitingForData ──fetch, decode──▶ checkStatus (sample)
//
// While a queued read's settling interval is still running down, the call
// returns pkg.ErrNotReady immediately without touching the pending
// transaction. A status byte that is not yet ready re-queues the status
// poll exactly once within the same call, running the waiting check again
// in case the retry's interval has already elapsed. Any failure path lands
// back in checkStatus so the next call starts a fresh cycle.
func (d *Driver) readAsync() (Sample, error) {
	for attempt := 0; attempt <= 1; attempt++ {
		switch d.state {
		case stateCheckStatus:
			if err := d.queued.StartRead(RegStatus1, 1); err != nil {
				return Sample{}, transportErr("queue status poll", err)
			}
			d.state = stateWaitingForStatus
			if attempt == 0 {
				return Sample{}, pkg.ErrNotReady
			}
			fallthrough

		case stateWaitingForStatus:
			if d.queued.TimeRemaining() > 0 {
				return Sample{}, pkg.ErrNotReady
			}
			var status [1]byte
			err := d.queued.CompleteRead(status[:])
			if err != nil || status[0]&(status1DataReady|status1DataOverrun) == 0 {
				// Too early; queue the status poll once more this call.
				d.state = stateCheckStatus
				continue
			}

			if err := d.queued.StartRead(RegHXL, dataBurstLen); err != nil {
				d.state = stateCheckStatus
				return Sample{}, transportErr("queue data poll", err)
			}
			d.state = stateWaitingForData
			return Sample{}, pkg.ErrNotReady

		case stateWaitingForData:
			if d.queued.TimeRemaining() > 0 {
				return Sample{}, pkg.ErrNotReady
			}
			var buf [dataBurstLen]byte
			err := d.queued.CompleteRead(buf[:])
			d.state = stateCheckStatus
			if err != nil {
				return Sample{}, transportErr("complete data poll", err)
			}
			if err := status2Err(buf[6]); err != nil {
				return Sample{}, err
			}
			return d.decode(buf[:6]), nil
		}
	}
	return Sample{}, pkg.ErrNotReady
}
