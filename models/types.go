// Package models contain needed models
package models

// StegoRequest represents the request for inserting a secret file
type StegoRequest struct {
	Key            string `json:"key" binding:"required"`
	UseEncryption  bool   `json:"use_encryption"`
	UseRandomStart bool   `json:"use_random_start"`
	LSBBits        int    `json:"lsb_bits" binding:"required,min=1,max=4"`
	Mode           string `json:"mode"`
	SecretFilename string `json:"secret_filename"`
}

// StegoResponse represents the response after insertion
type StegoResponse struct {
	Success      bool    `json:"success"`
	Message      string  `json:"message"`
	PSNR         float64 `json:"psnr,omitempty"`
	StegoFileURL string  `json:"stego_file_url,omitempty"`
}

// ExtractRequest represents the request for extracting a secret file
type ExtractRequest struct {
	Key  string `json:"key" binding:"required"`
	Mode string `json:"mode"`
}

// ExtractResponse represents the response after extraction
type ExtractResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	SecretFilename string `json:"secret_filename,omitempty"`
}

// FeasibilityReport is the capacity-vs-requirement verdict computed before
// any embed attempt. MarginBits is negative when the payload does not fit.
type FeasibilityReport struct {
	CapacityBits       int     `json:"capacity_bits"`
	NeedBits           int     `json:"need_bits"`
	Fits               bool    `json:"fits"`
	MarginBits         int     `json:"margin_bits"`
	UtilizationPercent float64 `json:"utilization_percent"`
}

// AudioMetadata represents metadata about a decoded audio stream
type AudioMetadata struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   float64
	TotalBytes int
}

// StegoConfig represents configuration for steganography operations.
// The engines validate it eagerly and never repair a bad config.
type StegoConfig struct {
	Key            string
	UseEncryption  bool
	UseRandomStart bool
	LSBBits        int
	SecretFilename string
}

// CoverAnalysis summarizes a cover file for the analyze endpoint.
type CoverAnalysis struct {
	Valid        bool    `json:"valid"`
	Format       string  `json:"format"`
	TotalFrames  int     `json:"total_frames,omitempty"`
	PaddedFrames int     `json:"padded_frames,omitempty"`
	Stereo       bool    `json:"stereo"`
	Channels     int     `json:"channels,omitempty"`
	SampleRate   int     `json:"sample_rate,omitempty"`
	TotalSamples int     `json:"total_samples,omitempty"`
	DurationSec  float64 `json:"duration_sec,omitempty"`
	Title        string  `json:"title,omitempty"`
	Artist       string  `json:"artist,omitempty"`
	Album        string  `json:"album,omitempty"`
	Year         string  `json:"year,omitempty"`
}
