package stego

import (
	"encoding/binary"

	"audiostego-backend/crypto"
)

// ExtractResult carries the recovered secret and the parameters the search
// discovered for it.
type ExtractResult struct {
	Payload    []byte
	Name       string
	Ext        string
	LSBBits    int
	Encrypted  bool
	Randomized bool
}

// Filename reassembles the secret's original filename.
func (r *ExtractResult) Filename() string {
	if r.Name == "" && r.Ext == "" {
		return "extracted.bin"
	}
	return r.Name + r.Ext
}

// Extract recovers an embedded container from the carrier. The embedder's
// LSB depth and randomization flag are not stored anywhere readable up
// front, so candidates are tried in a fixed priority order: lsbBits
// ascending 1..4, randomized before sequential. A candidate is accepted
// only when the header parses and its recorded lsbBits equals the depth
// used for reading; that self-consistency check is what keeps accidental
// magic-byte matches from ending the search early. At most eight attempts
// run before the search gives up.
func Extract(c Carrier, key string) (*ExtractResult, error) {
	if err := crypto.ValidateKey(key); err != nil {
		return nil, err
	}
	seed := GenerateSeed(key)

	for lsbBits := 1; lsbBits <= 4; lsbBits++ {
		for _, randomized := range []bool{true, false} {
			res := tryExtract(c, key, seed, lsbBits, randomized)
			if res != nil {
				return res, nil
			}
		}
	}

	return nil, &ExtractError{Reason: "no valid header found; wrong key, wrong file, or corrupted cover"}
}

// tryExtract attempts one (lsbBits, randomized) candidate and returns nil
// when anything about it fails to line up.
func tryExtract(c Carrier, key string, seed uint64, lsbBits int, randomized bool) *ExtractResult {
	order := c.SlotOrder(lsbBits, randomized, seed)

	prefix := readBits(c, order, lsbBits, 32)
	if len(prefix) < 4 {
		return nil
	}
	totalLen := int(binary.BigEndian.Uint32(prefix[:4]))
	if totalLen <= 0 || totalLen > maxContainerLen {
		return nil
	}

	raw := readBits(c, order, lsbBits, (4+totalLen)*8)
	if len(raw) < 4+totalLen {
		return nil
	}
	blob := raw[4 : 4+totalLen]

	header, err := ParseHeader(blob)
	if err != nil {
		return nil
	}
	if header.LSBBits != lsbBits {
		return nil
	}
	if header.Len+header.PayloadLen > len(blob) {
		return nil
	}

	body := blob[header.Len : header.Len+header.PayloadLen]
	if header.Encrypted() {
		cipher := crypto.NewExtendedVigenere(key)
		body = cipher.Decrypt(body)
	}

	return &ExtractResult{
		Payload:    body,
		Name:       header.Name,
		Ext:        header.Ext,
		LSBBits:    header.LSBBits,
		Encrypted:  header.Encrypted(),
		Randomized: header.Randomized(),
	}
}

// readBits collects up to totalBits from the carrier's slots in the given
// order, low-order bits of each slot first, and packs them MSB-first into
// bytes. The result is shorter than requested when the carrier runs out of
// slots; callers treat that as a failed candidate.
func readBits(c Carrier, order []int, lsbBits, totalBits int) []byte {
	packer := NewBitPacker()
	for _, slot := range order {
		if packer.Len() >= totalBits {
			break
		}
		width := c.SlotBits(slot, lsbBits)
		value := c.ReadSlot(slot, lsbBits)
		for j := 0; j < width && packer.Len() < totalBits; j++ {
			packer.WriteBit(value >> j & 1)
		}
	}
	return packer.Bytes()
}
