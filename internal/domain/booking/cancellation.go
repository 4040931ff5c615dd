package booking

import "time"

const DefaultCancellationWindow = 24 * time.Hour

type CancellationPolicy struct {
	window time.Duration
}

func NewCancellationPolicy(window time.Duration) CancellationPolicy {
	if window < 0 {
		window = 0
	}
	return CancellationPolicy{window: window}
}

func (p CancellationPolicy) Window() time.Duration {
	return p.window
}

// CanCancel allows cancellation when at least the window remains before check-in.
// Exactly the window is still allowed.
func (p CancellationPolicy) CanCancel(checkIn, now time.Time) bool {
	return checkIn.Sub(now) >= p.window
}
