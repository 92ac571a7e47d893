package fix

import "sync/atomic"

// codecStats tracks cumulative encode/decode activity across the process.
// Fields are updated with relaxed atomic adds; readers take a point-in-time
// snapshot via Snapshot.
var codecStats struct {
	encodeCount      uint64
	decodeCount      uint64
	encodeNanosTotal uint64
	decodeNanosTotal uint64
}

func recordEncode(nanos int64) {
	atomic.AddUint64(&codecStats.encodeCount, 1)
	atomic.AddUint64(&codecStats.encodeNanosTotal, uint64(nanos))
}

func recordDecode(nanos int64) {
	atomic.AddUint64(&codecStats.decodeCount, 1)
	atomic.AddUint64(&codecStats.decodeNanosTotal, uint64(nanos))
}

// Stats is a point-in-time snapshot of codec activity.
type Stats struct {
	EncodeCount      uint64
	DecodeCount      uint64
	EncodeNanosTotal uint64
	DecodeNanosTotal uint64
}

// Snapshot returns the current codec counters.
func Snapshot() Stats {
	return Stats{
		EncodeCount:      atomic.LoadUint64(&codecStats.encodeCount),
		DecodeCount:      atomic.LoadUint64(&codecStats.decodeCount),
		EncodeNanosTotal: atomic.LoadUint64(&codecStats.encodeNanosTotal),
		DecodeNanosTotal: atomic.LoadUint64(&codecStats.decodeNanosTotal),
	}
}
