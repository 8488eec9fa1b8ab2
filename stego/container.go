package stego

import (
	"encoding/binary"
)

const (
	// ContainerMagic opens every embedded header.
	ContainerMagic = "STEG"
	// ContainerVersion is the only version this codec reads or writes.
	ContainerVersion = 1

	FlagEncrypted  = 1 << 0
	FlagRandomized = 1 << 1

	// Fixed header prefix: magic(4) version(1) flags(1) lsb(1)
	// payload_len(4) name_len(2) ext_len(1).
	headerFixedLen = 14

	// Upper bound on the declared container length. Anything larger is a
	// misread length prefix, not a payload.
	maxContainerLen = 128 << 20
)

// Header is the parsed form of the container header. It is immutable once
// built; embed rebuilds it from scratch on every call.
type Header struct {
	Version    byte
	Flags      byte
	LSBBits    int
	PayloadLen int
	Name       string
	Ext        string
	Len        int // encoded length including name and ext
}

func (h *Header) Encrypted() bool {
	return h.Flags&FlagEncrypted != 0
}

func (h *Header) Randomized() bool {
	return h.Flags&FlagRandomized != 0
}

// BuildHeader serializes a header for the given parameters. Multi-byte
// integers are little-endian; the outer length prefix added by
// BuildContainer is big-endian.
func BuildHeader(encrypted, randomized bool, lsbBits, payloadLen int, name, ext string) ([]byte, error) {
	nameBytes := []byte(name)
	extBytes := []byte(ext)

	if len(nameBytes) > 0xFFFF {
		return nil, &FormatError{Reason: "secret filename too long"}
	}
	if len(extBytes) > 0xFF {
		return nil, &FormatError{Reason: "secret extension too long"}
	}

	var flags byte
	if encrypted {
		flags |= FlagEncrypted
	}
	if randomized {
		flags |= FlagRandomized
	}

	buf := make([]byte, headerFixedLen, headerFixedLen+len(nameBytes)+len(extBytes))
	copy(buf[0:4], ContainerMagic)
	buf[4] = ContainerVersion
	buf[5] = flags
	buf[6] = byte(lsbBits)
	binary.LittleEndian.PutUint32(buf[7:11], uint32(payloadLen))
	binary.LittleEndian.PutUint16(buf[11:13], uint16(len(nameBytes)))
	buf[13] = byte(len(extBytes))
	buf = append(buf, nameBytes...)
	buf = append(buf, extBytes...)

	return buf, nil
}

// BuildContainer prefixes header+body with a big-endian u32 total length.
// The prefix counts header and body only, not itself.
func BuildContainer(header, body []byte) []byte {
	out := make([]byte, 4, 4+len(header)+len(body))
	binary.BigEndian.PutUint32(out, uint32(len(header)+len(body)))
	out = append(out, header...)
	out = append(out, body...)
	return out
}

// ParseHeader validates and decodes a container header from buf. Every
// bound is checked before any string is decoded: this parser doubles as
// the validity oracle for the brute-force extraction search, so garbage
// input must fail cleanly rather than read out of range.
func ParseHeader(buf []byte) (*Header, error) {
	if len(buf) < headerFixedLen {
		return nil, &FormatError{Reason: "header too small"}
	}
	if string(buf[0:4]) != ContainerMagic {
		return nil, &FormatError{Reason: "header magic mismatch"}
	}
	if buf[4] != ContainerVersion {
		return nil, &FormatError{Reason: "unsupported header version"}
	}

	h := &Header{
		Version:    buf[4],
		Flags:      buf[5],
		LSBBits:    int(buf[6]),
		PayloadLen: int(binary.LittleEndian.Uint32(buf[7:11])),
	}

	nameLen := int(binary.LittleEndian.Uint16(buf[11:13]))
	extLen := int(buf[13])
	if headerFixedLen+nameLen+extLen > len(buf) {
		return nil, &FormatError{Reason: "header truncated"}
	}

	off := headerFixedLen
	h.Name = string(buf[off : off+nameLen])
	off += nameLen
	h.Ext = string(buf[off : off+extLen])
	off += extLen
	h.Len = off

	return h, nil
}
