package serialize

import "bytes"

// BufferSink is a growable sink: every Append always succeeds.
type BufferSink struct {
	buf bytes.Buffer
}

// Append writes b to the buffer.
func (s *BufferSink) Append(b []byte) {
	s.buf.Write(b)
}

// Bytes returns the accumulated bytes.
func (s *BufferSink) Bytes() []byte {
	return s.buf.Bytes()
}

// SliceSink is a fixed-capacity sink: Append silently truncates once the
// backing slice is full, and BytesWritten reports how many bytes made
// it in.
type SliceSink struct {
	slice  []byte
	offset int
}

// NewSliceSink wraps slice as a fixed-capacity sink. Writes beyond
// len(slice) are dropped.
func NewSliceSink(slice []byte) *SliceSink {
	return &SliceSink{slice: slice}
}

// Append copies as much of b as fits into the remaining capacity.
func (s *SliceSink) Append(b []byte) {
	remaining := len(s.slice) - s.offset
	if remaining <= 0 {
		return
	}
	n := len(b)
	if n > remaining {
		n = remaining
	}
	if n <= 0 {
		return
	}
	copy(s.slice[s.offset:s.offset+n], b[:n])
	s.offset += n
}

// BytesWritten reports how many bytes were actually written, which may
// be less than the total the serializer attempted to append.
func (s *SliceSink) BytesWritten() int {
	return s.offset
}
