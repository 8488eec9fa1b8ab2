package mp3parser

// Frame is one accepted MPEG-1 Layer III frame located inside the raw
// stream. Offset+Size never exceeds the stream length.
type Frame struct {
	Offset      int
	Size        int
	Channels    int // 1 mono, 2 stereo
	SideInfoLen int // 17 mono, 32 stereo
	Padding     bool
}

// Stream is the result of scanning a raw MP3 byte stream. It is built once
// per Parse call and read-only afterwards.
type Stream struct {
	Data   []byte
	Frames []Frame
}

// Stats summarizes a scanned stream for cover analysis.
type Stats struct {
	TotalFrames  int
	PaddedFrames int
	Stereo       bool
	Valid        bool
}
