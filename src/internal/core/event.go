// FILE: src/internal/core/event.go
package core

// Event is a single decoded acquisition event held in the buffer.
type Event struct {
	// Combined from the two 32-bit clock words of the originating buffer
	// header as high*1000 + low. Not guaranteed unique or strictly
	// increasing between events.
	Timestamp uint64

	// Raw data words of one sub-event, never empty.
	Payload []uint32
}

// CombineTimestamp folds the two clock words of a buffer header into a
// single 64-bit value.
func CombineTimestamp(high, low uint32) uint64 {
	return uint64(high)*1000 + uint64(low)
}

// ByteSize returns the payload size in bytes.
func (e Event) ByteSize() uint64 {
	return uint64(len(e.Payload)) * 4
}
