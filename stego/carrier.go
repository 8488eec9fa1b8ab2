package stego

// Carrier is one addressable cover medium: an ordered list of slots, each
// holding a handful of payload bits. Slot membership is fixed by the cover
// bytes and lsbBits alone; SlotOrder only reorders the list.
//
// WriteSlot replaces the low width bits of a slot, width never exceeding
// SlotBits. A width narrower than the slot's capacity happens only on the
// final partial group of an embed; the untouched low-order bits keep their
// cover values.
type Carrier interface {
	SlotCount(lsbBits int) int
	SlotBits(slot, lsbBits int) int
	ReadSlot(slot, lsbBits int) byte
	WriteSlot(slot, lsbBits int, value byte, width int)
	SlotOrder(lsbBits int, randomized bool, seed uint64) []int
}

// SampleCarrier treats decoded audio as a flat array of interleaved signed
// 16-bit samples; slot i contributes the low lsbBits bits of sample i.
// Randomized ordering rotates the slot sequence from a seed-derived start
// instead of shuffling, which keeps the order cheap to derive for carriers
// with millions of samples.
type SampleCarrier struct {
	Samples []int16
}

func NewSampleCarrier(samples []int16) *SampleCarrier {
	return &SampleCarrier{Samples: samples}
}

func (c *SampleCarrier) SlotCount(lsbBits int) int {
	return len(c.Samples)
}

func (c *SampleCarrier) SlotBits(slot, lsbBits int) int {
	return lsbBits
}

func (c *SampleCarrier) ReadSlot(slot, lsbBits int) byte {
	mask := int16(1<<lsbBits - 1)
	return byte(c.Samples[slot] & mask)
}

func (c *SampleCarrier) WriteSlot(slot, lsbBits int, value byte, width int) {
	mask := 1<<width - 1
	s := int(c.Samples[slot])
	s = (s &^ mask) | (int(value) & mask)
	// Re-wrap into signed 16-bit range after the bitwise update.
	c.Samples[slot] = int16((s+0x8000)&0xFFFF - 0x8000)
}

func (c *SampleCarrier) SlotOrder(lsbBits int, randomized bool, seed uint64) []int {
	n := len(c.Samples)
	order := make([]int, n)
	start := 0
	if randomized {
		start = StartOffset(n, seed)
	}
	for i := range order {
		order[i] = (start + i) % n
	}
	return order
}
