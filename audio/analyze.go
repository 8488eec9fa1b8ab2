package audio

import (
	"bytes"

	"audiostego-backend/models"
	"audiostego-backend/mp3parser"

	"github.com/bogem/id3v2"
)

// AnalyzeMP3 reports frame statistics for an MP3 cover plus whatever ID3
// tags it carries. Tag parsing failures are non-fatal; the frame scan is
// what decides validity.
func (ad *AudioDecoder) AnalyzeMP3(mp3Data []byte) *models.CoverAnalysis {
	stats := mp3parser.Parse(mp3Data).Stats()

	analysis := &models.CoverAnalysis{
		Valid:        stats.Valid,
		Format:       "mp3",
		TotalFrames:  stats.TotalFrames,
		PaddedFrames: stats.PaddedFrames,
		Stereo:       stats.Stereo,
	}

	tag, err := id3v2.ParseReader(bytes.NewReader(mp3Data), id3v2.Options{Parse: true})
	if err == nil && tag != nil {
		analysis.Title = tag.Title()
		analysis.Artist = tag.Artist()
		analysis.Album = tag.Album()
		analysis.Year = tag.Year()
	}

	return analysis
}

// AnalyzeWAV reports sample statistics for a WAV cover.
func (ad *AudioDecoder) AnalyzeWAV(wavData []byte) *models.CoverAnalysis {
	samples, metadata, err := ad.DecodeWAV(wavData)
	if err != nil {
		return &models.CoverAnalysis{Valid: false, Format: "wav"}
	}

	return &models.CoverAnalysis{
		Valid:        true,
		Format:       "wav",
		Stereo:       metadata.Channels == 2,
		Channels:     metadata.Channels,
		SampleRate:   metadata.SampleRate,
		TotalSamples: len(samples),
		DurationSec:  metadata.Duration,
	}
}
