// Package stego implements the LSB steganographic codec shared by the
// MP3 frame and PCM sample carriers.
package stego

// BitReader walks a byte slice one bit at a time, most significant bit
// first. Exhaustion is an ordinary terminal state reported by Remaining,
// never a panic.
type BitReader struct {
	data []byte
	pos  int // bit position
}

func NewBitReader(data []byte) *BitReader {
	return &BitReader{data: data}
}

// Remaining returns how many bits are left to read.
func (br *BitReader) Remaining() int {
	return len(br.data)*8 - br.pos
}

// ReadBit returns the next bit. Callers must check Remaining first.
func (br *BitReader) ReadBit() byte {
	bytePos := br.pos / 8
	bitPos := 7 - (br.pos % 8)
	br.pos++
	return (br.data[bytePos] >> bitPos) & 1
}

// ReadGroup consumes up to width bits and packs them into the low-order
// positions of a byte: the first bit read lands in bit 0, the next in
// bit 1, and so on. It returns the packed value and how many bits were
// actually consumed, which is less than width only when the stream runs
// out. That tail group is what the carriers write with a narrowed mask.
func (br *BitReader) ReadGroup(width int) (value byte, count int) {
	for count < width && br.Remaining() > 0 {
		value |= br.ReadBit() << count
		count++
	}
	return value, count
}

// BitPacker accumulates single bits and packs them into bytes MSB-first.
// A final incomplete group is left-shifted with zeros on the low end, so
// Bytes must only be called once the caller has collected a pre-validated
// bit count.
type BitPacker struct {
	out []byte
	cur byte
	cnt int
}

func NewBitPacker() *BitPacker {
	return &BitPacker{}
}

func (bp *BitPacker) WriteBit(bit byte) {
	bp.cur = (bp.cur << 1) | (bit & 1)
	bp.cnt++
	if bp.cnt == 8 {
		bp.out = append(bp.out, bp.cur)
		bp.cur = 0
		bp.cnt = 0
	}
}

// Len returns the number of bits written so far.
func (bp *BitPacker) Len() int {
	return len(bp.out)*8 + bp.cnt
}

func (bp *BitPacker) Bytes() []byte {
	if bp.cnt == 0 {
		return bp.out
	}
	return append(append([]byte{}, bp.out...), bp.cur<<(8-bp.cnt))
}
