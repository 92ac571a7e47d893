package network

import "sync/atomic"

var netStats struct {
	readCount       uint64
	writeCount      uint64
	readNanosTotal  uint64
	writeNanosTotal uint64
}

func recordRead(nanos int64) {
	atomic.AddUint64(&netStats.readCount, 1)
	atomic.AddUint64(&netStats.readNanosTotal, uint64(nanos))
}

func recordWrite(nanos int64) {
	atomic.AddUint64(&netStats.writeCount, 1)
	atomic.AddUint64(&netStats.writeNanosTotal, uint64(nanos))
}

// Stats is a point-in-time snapshot of transport I/O activity.
type Stats struct {
	ReadCount       uint64
	WriteCount      uint64
	ReadNanosTotal  uint64
	WriteNanosTotal uint64
}

// Snapshot returns the current transport counters.
func Snapshot() Stats {
	return Stats{
		ReadCount:       atomic.LoadUint64(&netStats.readCount),
		WriteCount:      atomic.LoadUint64(&netStats.writeCount),
		ReadNanosTotal:  atomic.LoadUint64(&netStats.readNanosTotal),
		WriteNanosTotal: atomic.LoadUint64(&netStats.writeNanosTotal),
	}
}
