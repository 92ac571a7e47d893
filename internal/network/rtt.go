package network

import (
	"sync"
	"time"
)

const (
	defaultInitialEstimate = 1 * time.Millisecond
	minEstimate            = 10 * time.Microsecond
	maxEstimate            = 5 * time.Second
	rttAlpha               = 0.125 // RFC 6298 SRTT smoothing factor
	rttBeta                = 0.25  // RFC 6298 RTTVAR smoothing factor
)

// RTTEstimator tracks a smoothed per-session latency figure using the RFC
// 6298 SRTT/RTTVAR recurrence. Unlike a TCP retransmission timer, its
// output (Estimate) is exposed to operators as a companion to the
// mandatory atomic latency counters; it does not gate any session
// behavior, since this transport never retransmits.
type RTTEstimator struct {
	mu       sync.RWMutex
	srtt     time.Duration
	rttvar   time.Duration
	estimate time.Duration
}

// NewRTTEstimator returns an estimator seeded with a conservative initial
// value, ready for its first Update.
func NewRTTEstimator() *RTTEstimator {
	return &RTTEstimator{estimate: defaultInitialEstimate}
}

// Update folds one observed round-trip latency into the running estimate.
func (e *RTTEstimator) Update(sample time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.srtt == 0 {
		e.srtt = sample
		e.rttvar = sample / 2
	} else {
		delta := e.srtt - sample
		if delta < 0 {
			delta = -delta
		}
		e.rttvar = time.Duration((1-rttBeta)*float64(e.rttvar) + rttBeta*float64(delta))
		e.srtt = time.Duration((1-rttAlpha)*float64(e.srtt) + rttAlpha*float64(sample))
	}

	est := e.srtt + 4*e.rttvar
	if est < minEstimate {
		est = minEstimate
	} else if est > maxEstimate {
		est = maxEstimate
	}
	e.estimate = est
}

// Estimate returns the current smoothed latency figure.
func (e *RTTEstimator) Estimate() time.Duration {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.estimate
}
