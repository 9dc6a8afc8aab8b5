package pkg

import "errors"

// Condition classifies the outcome of a single read attempt.
//
// All conditions other than ConditionSample are soft: the driver remains
// usable and the caller simply polls again on its next tick.
type Condition uint8

// Read outcome conditions.
const (
	ConditionSample    Condition = iota // A sample was produced
	ConditionNotReady                   // No new data this tick
	ConditionBusy                       // A queued transaction is still pending
	ConditionDataError                  // Sensor flagged a data error
	ConditionOverflow                   // Magnetic sensor overflow
	ConditionTransport                  // Underlying bus operation failed
)

// String returns a human-readable condition name.
func (c Condition) String() string {
	switch c {
	case ConditionSample:
		return "sample"
	case ConditionNotReady:
		return "not ready"
	case ConditionBusy:
		return "busy"
	case ConditionDataError:
		return "data error"
	case ConditionOverflow:
		return "overflow"
	case ConditionTransport:
		return "transport failure"
	default:
		return "unknown"
	}
}

// Classify maps a read error to its condition. A nil error is ConditionSample;
// an error that wraps none of the sentinels is a transport failure.
func Classify(err error) Condition {
	switch {
	case err == nil:
		return ConditionSample
	case errors.Is(err, ErrNotReady):
		return ConditionNotReady
	case errors.Is(err, ErrBusy):
		return ConditionBusy
	case errors.Is(err, ErrDataError):
		return ConditionDataError
	case errors.Is(err, ErrOverflow):
		return ConditionOverflow
	default:
		return ConditionTransport
	}
}
