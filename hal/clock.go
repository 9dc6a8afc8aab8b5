package hal

import "time"

// SystemClock implements Clock using the time package.
// The zero value is ready to use.
type SystemClock struct{}

// Now returns time.Now, which carries a monotonic reading on all supported
// platforms.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep blocks for at least d.
func (SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// compile-time interface check
var _ Clock = SystemClock{}
