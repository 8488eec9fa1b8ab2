// Package audio handles decoding covers to PCM and encoding stego samples
// back out as lossless WAV.
package audio

import (
	"bytes"
	"fmt"
	"io"

	"audiostego-backend/models"

	"github.com/aler9/writerseeker"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tosone/minimp3"
)

const BitsInByte = 8

type AudioDecoder struct{}

func NewAudioDecoder() *AudioDecoder {
	return &AudioDecoder{}
}

// DecodeMP3 decodes compressed audio into interleaved signed 16-bit
// samples. The samples feed the PCM carrier; the stego result is written
// back as WAV, never re-encoded to MP3.
func (ad *AudioDecoder) DecodeMP3(mp3Data []byte) ([]int16, *models.AudioMetadata, error) {
	decoder, data, err := minimp3.DecodeFull(mp3Data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode MP3: %v", err)
	}
	defer decoder.Close()

	samples := SamplesFromBytes(data)
	samplesPerChannel := len(samples) / decoder.Channels
	duration := float64(samplesPerChannel) / float64(decoder.SampleRate)

	metadata := &models.AudioMetadata{
		SampleRate: decoder.SampleRate,
		Channels:   decoder.Channels,
		BitDepth:   16,
		Duration:   duration,
		TotalBytes: len(data),
	}

	return samples, metadata, nil
}

// DecodeWAV decodes a 16-bit PCM WAV file into interleaved samples.
func (ad *AudioDecoder) DecodeWAV(wavData []byte) ([]int16, *models.AudioMetadata, error) {
	decoder := wav.NewDecoder(bytes.NewReader(wavData))
	if !decoder.IsValidFile() {
		return nil, nil, fmt.Errorf("not a valid WAV file")
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode WAV: %v", err)
	}
	if decoder.BitDepth != 16 {
		return nil, nil, fmt.Errorf("unsupported WAV bit depth: %d (need 16)", decoder.BitDepth)
	}

	samples := make([]int16, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = int16(s)
	}

	channels := buf.Format.NumChannels
	sampleRate := buf.Format.SampleRate
	samplesPerChannel := 0
	if channels > 0 {
		samplesPerChannel = len(samples) / channels
	}
	duration := 0.0
	if sampleRate > 0 {
		duration = float64(samplesPerChannel) / float64(sampleRate)
	}

	metadata := &models.AudioMetadata{
		SampleRate: sampleRate,
		Channels:   channels,
		BitDepth:   16,
		Duration:   duration,
		TotalBytes: len(samples) * 2,
	}

	return samples, metadata, nil
}

// EncodeWAV writes interleaved 16-bit samples as an uncompressed WAV file
// in memory.
func (ad *AudioDecoder) EncodeWAV(samples []int16, metadata *models.AudioMetadata) ([]byte, error) {
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: metadata.Channels,
			SampleRate:  metadata.SampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}

	ws := &writerseeker.WriterSeeker{}
	encoder := wav.NewEncoder(ws, metadata.SampleRate, 16, metadata.Channels, 1)

	if err := encoder.Write(buf); err != nil {
		return nil, fmt.Errorf("failed to encode WAV: %v", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to close WAV encoder: %v", err)
	}

	wavData, err := io.ReadAll(ws.Reader())
	if err != nil {
		return nil, fmt.Errorf("failed to read WAV data: %v", err)
	}

	return wavData, nil
}

// SamplesFromBytes reinterprets little-endian PCM bytes as int16 samples.
// A trailing odd byte is dropped.
func SamplesFromBytes(pcm []byte) []int16 {
	count := len(pcm) / 2
	samples := make([]int16, count)
	for i := 0; i < count; i++ {
		samples[i] = int16(uint16(pcm[i*2]) | uint16(pcm[i*2+1])<<8)
	}
	return samples
}

// BytesFromSamples is the inverse of SamplesFromBytes.
func BytesFromSamples(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		out[i*2] = byte(uint16(s))
		out[i*2+1] = byte(uint16(s) >> 8)
	}
	return out
}
