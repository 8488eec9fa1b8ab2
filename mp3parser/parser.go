// Package mp3parser scans raw MPEG-1 Layer III streams into frames
// addressable by byte offset.
package mp3parser

// Lookup tables for MPEG-1 Layer III. Index 0 and 15 of the bitrate table
// are free/reserved, index 3 of the samplerate table is reserved.
var bitrateTable = [16]int{
	0, 32, 40, 48, 56, 64, 80, 96,
	112, 128, 160, 192, 224, 256, 320, 0,
}

var sampleRateTable = [4]int{44100, 48000, 32000, 0}

// read syncsafe int for ID3v2 size
func syncSafeToInt(b []byte) int {
	return int(b[0]&0x7F)<<21 |
		int(b[1]&0x7F)<<14 |
		int(b[2]&0x7F)<<7 |
		int(b[3]&0x7F)
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Parse scans data for MPEG-1 Layer III frames, skipping a leading ID3v2
// tag if present. A sync candidate that fails validation advances the scan
// by a single byte; an accepted frame advances by its full length, frames
// being contiguous back-to-back. Parse never fails: a stream without any
// acceptable frame simply yields an empty frame list.
func Parse(data []byte) *Stream {
	st := &Stream{Data: data}
	i := 0
	n := len(data)

	if n >= 10 && string(data[0:3]) == "ID3" {
		i = 10 + syncSafeToInt(data[6:10])
	}

	for i+4 <= n {
		if data[i] != 0xFF || data[i+1]&0xE0 != 0xE0 {
			i++
			continue
		}

		versionID := (data[i+1] >> 3) & 0x3
		layer := (data[i+1] >> 1) & 0x3
		bitrateIdx := (data[i+2] >> 4) & 0xF
		sampleRateIdx := (data[i+2] >> 2) & 0x3
		padding := (data[i+2]>>1)&0x1 == 1
		channelMode := (data[i+3] >> 6) & 0x3

		// MPEG-1 is version bits 11, Layer III is layer bits 01.
		if versionID != 0x3 || layer != 0x1 {
			i++
			continue
		}

		bitrate := bitrateTable[bitrateIdx] * 1000
		sampleRate := sampleRateTable[sampleRateIdx]
		if bitrate == 0 || sampleRate == 0 {
			i++
			continue
		}

		frameLen := 144*bitrate/sampleRate + btoi(padding)
		if frameLen <= 0 || i+frameLen > n {
			i++
			continue
		}

		channels := 2
		sideInfoLen := 32
		if channelMode == 0x3 {
			channels = 1
			sideInfoLen = 17
		}

		st.Frames = append(st.Frames, Frame{
			Offset:      i,
			Size:        frameLen,
			Channels:    channels,
			SideInfoLen: sideInfoLen,
			Padding:     padding,
		})
		i += frameLen
	}

	return st
}

// PaddedFrames returns the indices of frames whose padding bit is set;
// each such frame ends with one padding byte usable as a slot.
func (st *Stream) PaddedFrames() []int {
	var out []int
	for i, fr := range st.Frames {
		if fr.Padding {
			out = append(out, i)
		}
	}
	return out
}

// Stats summarizes the scanned stream.
func (st *Stream) Stats() Stats {
	s := Stats{
		TotalFrames:  len(st.Frames),
		PaddedFrames: len(st.PaddedFrames()),
		Valid:        len(st.Frames) > 0,
	}
	for _, fr := range st.Frames {
		if fr.Channels == 2 {
			s.Stereo = true
		}
	}
	return s
}
