package fix

import "bytes"

// scanFrame looks for one complete FIX message starting at the first "8="
// in buf, tolerating leading garbage before it. It returns the slice
// [start, end) spanning the full framed message, including the trailing
// checksum field's SOH, and ok=true if one was found. If only a partial
// message is present, ok is false and err is nil: callers should wait for
// more bytes.
func scanFrame(buf []byte) (start, end int, ok bool, err error) {
	begin := bytes.Index(buf, []byte("8="))
	if begin < 0 {
		return 0, 0, false, nil
	}
	search := begin
	for {
		rel := bytes.Index(buf[search:], []byte("10="))
		if rel < 0 {
			return 0, 0, false, nil
		}
		idx := search + rel
		if idx != begin && buf[idx-1] != SOH {
			// "10=" occurred mid-value, not at a field boundary; keep
			// looking further in the buffer.
			search = idx + 1
			continue
		}
		valStart := idx + 3
		if valStart+3 >= len(buf) {
			return 0, 0, false, nil
		}
		if buf[valStart+3] != SOH {
			search = idx + 1
			continue
		}
		end = valStart + 4
		return begin, end, true, nil
	}
}
