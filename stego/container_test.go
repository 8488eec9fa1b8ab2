package stego

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		encrypted, randomized bool
		lsbBits               int
		name, ext             string
	}{
		{false, false, 1, "report", ".pdf"},
		{true, false, 2, "archive", ".tar.gz"},
		{false, true, 3, "noext", ""},
		{true, true, 4, "", ".bin"},
	} {
		hdr, err := BuildHeader(tc.encrypted, tc.randomized, tc.lsbBits, 12345, tc.name, tc.ext)
		require.NoError(t, err)

		parsed, err := ParseHeader(hdr)
		require.NoError(t, err)
		assert.Equal(t, tc.encrypted, parsed.Encrypted())
		assert.Equal(t, tc.randomized, parsed.Randomized())
		assert.Equal(t, tc.lsbBits, parsed.LSBBits)
		assert.Equal(t, 12345, parsed.PayloadLen)
		assert.Equal(t, tc.name, parsed.Name)
		assert.Equal(t, tc.ext, parsed.Ext)
		assert.Equal(t, len(hdr), parsed.Len)
	}
}

func TestBuildContainerLengthPrefix(t *testing.T) {
	hdr, err := BuildHeader(false, false, 1, 3, "f", ".x")
	require.NoError(t, err)
	container := BuildContainer(hdr, []byte{1, 2, 3})

	require.Equal(t, 4+len(hdr)+3, len(container))
	// Big-endian u32 prefix counts header+body, not itself.
	total := int(container[0])<<24 | int(container[1])<<16 | int(container[2])<<8 | int(container[3])
	assert.Equal(t, len(hdr)+3, total)
}

func TestParseHeaderRejectsBadMagic(t *testing.T) {
	hdr, err := BuildHeader(false, false, 1, 0, "n", ".e")
	require.NoError(t, err)
	hdr[0] = 'X'

	_, err = ParseHeader(hdr)
	var fe *FormatError
	require.Error(t, err)
	assert.True(t, errors.As(err, &fe), "want FormatError, got %T", err)
}

func TestParseHeaderRejectsBadVersion(t *testing.T) {
	hdr, err := BuildHeader(false, false, 1, 0, "n", ".e")
	require.NoError(t, err)
	hdr[4] = 99

	_, err = ParseHeader(hdr)
	var fe *FormatError
	assert.True(t, errors.As(err, &fe))
}

func TestParseHeaderRejectsShortBuffer(t *testing.T) {
	for size := 0; size < 14; size++ {
		_, err := ParseHeader(make([]byte, size))
		var fe *FormatError
		assert.True(t, errors.As(err, &fe), "size %d", size)
	}
}

func TestParseHeaderRejectsTruncatedName(t *testing.T) {
	hdr, err := BuildHeader(false, false, 2, 0, "longfilename", ".dat")
	require.NoError(t, err)

	_, err = ParseHeader(hdr[:len(hdr)-3])
	var fe *FormatError
	assert.True(t, errors.As(err, &fe))
}

func TestParseHeaderGarbageNeverPanics(t *testing.T) {
	bufs := [][]byte{
		nil,
		{0xFF},
		[]byte("STEG"),
		append([]byte("STEG\x01\x00\x04"), make([]byte, 7)...),
		make([]byte, 64),
	}
	for i, buf := range bufs {
		if _, err := ParseHeader(buf); err == nil && len(buf) >= 14 && string(buf[:4]) != ContainerMagic {
			t.Errorf("case %d: garbage accepted", i)
		}
	}
}

func TestBuildHeaderRejectsOverlongExtension(t *testing.T) {
	ext := make([]byte, 256)
	for i := range ext {
		ext[i] = 'x'
	}
	_, err := BuildHeader(false, false, 1, 0, "n", string(ext))
	var fe *FormatError
	assert.True(t, errors.As(err, &fe))
}
