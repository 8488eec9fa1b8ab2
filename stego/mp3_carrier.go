package stego

import (
	"audiostego-backend/mp3parser"
)

// PrivateBitCarrier embeds in the first side-info byte of every MPEG frame
// (frame offset + 4). A mono frame contributes 1 bit, a stereo frame 2;
// lsbBits plays no part in slot width for this carrier, only the header
// records it. Randomized ordering shuffles the frame list with the keyed
// permutation.
type PrivateBitCarrier struct {
	stream *mp3parser.Stream
	data   []byte
}

// NewPrivateBitCarrier scans mp3Data and wraps it as a mutable carrier.
// Fails when the stream contains no acceptable frames.
func NewPrivateBitCarrier(mp3Data []byte) (*PrivateBitCarrier, error) {
	st := mp3parser.Parse(mp3Data)
	if len(st.Frames) == 0 {
		return nil, &FormatError{Reason: "no MPEG-1 Layer III frames detected"}
	}
	return &PrivateBitCarrier{stream: st, data: mp3Data}, nil
}

// Bytes returns the carrier's backing stream, including any mutations.
func (c *PrivateBitCarrier) Bytes() []byte {
	return c.data
}

func (c *PrivateBitCarrier) SlotCount(lsbBits int) int {
	return len(c.stream.Frames)
}

func (c *PrivateBitCarrier) SlotBits(slot, lsbBits int) int {
	if c.stream.Frames[slot].Channels == 1 {
		return 1
	}
	return 2
}

func (c *PrivateBitCarrier) slotOffset(slot int) int {
	return c.stream.Frames[slot].Offset + 4
}

func (c *PrivateBitCarrier) ReadSlot(slot, lsbBits int) byte {
	mask := byte(1<<c.SlotBits(slot, lsbBits) - 1)
	return c.data[c.slotOffset(slot)] & mask
}

func (c *PrivateBitCarrier) WriteSlot(slot, lsbBits int, value byte, width int) {
	mask := byte(1<<width - 1)
	off := c.slotOffset(slot)
	c.data[off] = (c.data[off] &^ mask) | (value & mask)
}

func (c *PrivateBitCarrier) SlotOrder(lsbBits int, randomized bool, seed uint64) []int {
	n := len(c.stream.Frames)
	if randomized {
		return Permutation(n, seed)
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

// PaddingByteCarrier embeds in the trailing padding byte of frames whose
// padding bit is set, lsbBits bits per padded frame. Covers encoded at a
// constant bitrate with frequent padding (44.1 kHz CBR) work best; a
// stream without a single padded frame is rejected outright.
type PaddingByteCarrier struct {
	stream *mp3parser.Stream
	data   []byte
	padded []int // frame indices with padding set
}

func NewPaddingByteCarrier(mp3Data []byte) (*PaddingByteCarrier, error) {
	st := mp3parser.Parse(mp3Data)
	if len(st.Frames) == 0 {
		return nil, &FormatError{Reason: "no MPEG-1 Layer III frames detected"}
	}
	padded := st.PaddedFrames()
	if len(padded) == 0 {
		return nil, &FormatError{Reason: "no padding bytes present; try a CBR cover"}
	}
	return &PaddingByteCarrier{stream: st, data: mp3Data, padded: padded}, nil
}

func (c *PaddingByteCarrier) Bytes() []byte {
	return c.data
}

func (c *PaddingByteCarrier) SlotCount(lsbBits int) int {
	return len(c.padded)
}

func (c *PaddingByteCarrier) SlotBits(slot, lsbBits int) int {
	return lsbBits
}

func (c *PaddingByteCarrier) slotOffset(slot int) int {
	fr := c.stream.Frames[c.padded[slot]]
	return fr.Offset + fr.Size - 1
}

func (c *PaddingByteCarrier) ReadSlot(slot, lsbBits int) byte {
	mask := byte(1<<lsbBits - 1)
	return c.data[c.slotOffset(slot)] & mask
}

func (c *PaddingByteCarrier) WriteSlot(slot, lsbBits int, value byte, width int) {
	mask := byte(1<<width - 1)
	off := c.slotOffset(slot)
	c.data[off] = (c.data[off] &^ mask) | (value & mask)
}

func (c *PaddingByteCarrier) SlotOrder(lsbBits int, randomized bool, seed uint64) []int {
	n := len(c.padded)
	if randomized {
		return Permutation(n, seed)
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}
