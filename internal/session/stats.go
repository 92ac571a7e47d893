package session

import "sync/atomic"

// globalStats holds process-wide order processing counters, updated by
// every session's processor goroutine. Sum/count fields use plain relaxed
// adds; min/max require a compare-and-swap retry loop since Go has no
// atomic min/max primitive.
var globalStats struct {
	ordersProcessed   uint64
	totalLatencyMicros uint64
	minLatencyMicros  uint64
	maxLatencyMicros  uint64
}

func init() {
	atomic.StoreUint64(&globalStats.minLatencyMicros, ^uint64(0))
}

// RecordOrderLatency folds one processed order's latency into the global
// counters.
func RecordOrderLatency(micros uint64) {
	atomic.AddUint64(&globalStats.ordersProcessed, 1)
	atomic.AddUint64(&globalStats.totalLatencyMicros, micros)
	casMin(&globalStats.minLatencyMicros, micros)
	casMax(&globalStats.maxLatencyMicros, micros)
}

func casMin(addr *uint64, v uint64) {
	for {
		cur := atomic.LoadUint64(addr)
		if v >= cur {
			return
		}
		if atomic.CompareAndSwapUint64(addr, cur, v) {
			return
		}
	}
}

func casMax(addr *uint64, v uint64) {
	for {
		cur := atomic.LoadUint64(addr)
		if v <= cur {
			return
		}
		if atomic.CompareAndSwapUint64(addr, cur, v) {
			return
		}
	}
}

// Stats is a point-in-time snapshot of global order processing activity.
type Stats struct {
	OrdersProcessed    uint64
	TotalLatencyMicros uint64
	MinLatencyMicros   uint64
	MaxLatencyMicros   uint64
}

// Snapshot returns the current global counters. MinLatencyMicros is 0 if
// no order has been processed yet.
func Snapshot() Stats {
	count := atomic.LoadUint64(&globalStats.ordersProcessed)
	min := atomic.LoadUint64(&globalStats.minLatencyMicros)
	if count == 0 {
		min = 0
	}
	return Stats{
		OrdersProcessed:    count,
		TotalLatencyMicros: atomic.LoadUint64(&globalStats.totalLatencyMicros),
		MinLatencyMicros:   min,
		MaxLatencyMicros:   atomic.LoadUint64(&globalStats.maxLatencyMicros),
	}
}

// AvgLatencyMicros returns the mean per-order latency, or 0 if no orders
// have been processed.
func (s Stats) AvgLatencyMicros() float64 {
	if s.OrdersProcessed == 0 {
		return 0
	}
	return float64(s.TotalLatencyMicros) / float64(s.OrdersProcessed)
}
