// Package handlers is made to handle requests
package handlers

import (
	"errors"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"audiostego-backend/audio"
	"audiostego-backend/crypto"
	"audiostego-backend/models"
	"audiostego-backend/stego"

	"github.com/gin-gonic/gin"
)

// Carrier modes. MP3 covers default to the private-bit strategy; WAV
// covers always use PCM.
const (
	ModePrivateBit = "private-bit"
	ModePadding    = "padding"
	ModePCM        = "pcm"
)

type StegoHandler struct {
	audioDecoder *audio.AudioDecoder
}

func NewStegoHandler() *StegoHandler {
	return &StegoHandler{
		audioDecoder: audio.NewAudioDecoder(),
	}
}

func (h *StegoHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Audio steganography API is running",
		"version": "1.0.0",
	})
}

// carrierBundle is one opened cover: the carrier the engines operate on
// plus whatever is needed to serialize the result afterwards.
type carrierBundle struct {
	carrier  stego.Carrier
	mode     string
	mp3      interface{ Bytes() []byte } // set for MP3 bitstream modes
	samples  []int16                     // set for PCM mode
	original []int16                     // pre-embed copy for PSNR
	metadata *models.AudioMetadata
}

// openCarrier decodes or scans the uploaded cover according to its file
// extension and the requested mode.
func (h *StegoHandler) openCarrier(data []byte, filename, mode string) (*carrierBundle, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".wav":
		samples, metadata, err := h.audioDecoder.DecodeWAV(data)
		if err != nil {
			return nil, err
		}
		original := make([]int16, len(samples))
		copy(original, samples)
		return &carrierBundle{
			carrier:  stego.NewSampleCarrier(samples),
			mode:     ModePCM,
			samples:  samples,
			original: original,
			metadata: metadata,
		}, nil

	case ".mp3":
		switch mode {
		case ModePCM:
			samples, metadata, err := h.audioDecoder.DecodeMP3(data)
			if err != nil {
				return nil, err
			}
			original := make([]int16, len(samples))
			copy(original, samples)
			return &carrierBundle{
				carrier:  stego.NewSampleCarrier(samples),
				mode:     ModePCM,
				samples:  samples,
				original: original,
				metadata: metadata,
			}, nil
		case ModePadding:
			carrier, err := stego.NewPaddingByteCarrier(data)
			if err != nil {
				return nil, err
			}
			return &carrierBundle{carrier: carrier, mode: ModePadding, mp3: carrier}, nil
		case "", ModePrivateBit:
			carrier, err := stego.NewPrivateBitCarrier(data)
			if err != nil {
				return nil, err
			}
			return &carrierBundle{carrier: carrier, mode: ModePrivateBit, mp3: carrier}, nil
		default:
			return nil, fmt.Errorf("unknown mode %q", mode)
		}

	default:
		return nil, fmt.Errorf("unsupported audio format %q; only MP3 and WAV are supported", ext)
	}
}

// stegoOutput serializes the mutated carrier. PCM results always come back
// as lossless WAV; re-encoding to MP3 would destroy the embedded bits.
func (h *StegoHandler) stegoOutput(bundle *carrierBundle) ([]byte, string, string, error) {
	if bundle.mode == ModePCM {
		wavData, err := h.audioDecoder.EncodeWAV(bundle.samples, bundle.metadata)
		if err != nil {
			return nil, "", "", err
		}
		return wavData, ".wav", "audio/wav", nil
	}
	return bundle.mp3.Bytes(), ".mp3", "audio/mpeg", nil
}

func (h *StegoHandler) InsertMessage(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil { // 32MB limit
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	key := c.PostForm("key")
	useEncryption := c.PostForm("use_encryption") == "true"
	useRandomStart := c.PostForm("use_random_start") == "true"
	mode := c.PostForm("mode")

	if err := crypto.ValidateKey(key); err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid key: %v", err),
		})
		return
	}

	lsbBits, err := strconv.Atoi(c.PostForm("lsb_bits"))
	if err != nil || lsbBits < 1 || lsbBits > 4 {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: "LSB bits must be between 1 and 4",
		})
		return
	}

	audioData, audioHeader, ok := readFormFile(c, "audio_file", "Audio file is required")
	if !ok {
		return
	}
	secretData, secretHeader, ok := readFormFile(c, "secret_file", "Secret file is required")
	if !ok {
		return
	}

	bundle, err := h.openCarrier(audioData, audioHeader.Filename, mode)
	if err != nil {
		c.JSON(statusForError(err), models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to open cover: %v", err),
		})
		return
	}

	config := &models.StegoConfig{
		Key:            key,
		UseEncryption:  useEncryption,
		UseRandomStart: useRandomStart,
		LSBBits:        lsbBits,
		SecretFilename: secretHeader.Filename,
	}

	if err := stego.Embed(bundle.carrier, secretData, config); err != nil {
		c.JSON(statusForError(err), models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to embed secret data: %v", err),
		})
		return
	}

	stegoData, outExt, contentType, err := h.stegoOutput(bundle)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to write stego audio: %v", err),
		})
		return
	}

	secretName, secretExt := stego.SplitSecretName(secretHeader.Filename)
	report := stego.CheckFeasibility(bundle.carrier, len(secretData), secretName, secretExt, lsbBits)

	baseFilename := strings.TrimSuffix(audioHeader.Filename, filepath.Ext(audioHeader.Filename))
	outputFilename := fmt.Sprintf("%s_stego%s", baseFilename, outExt)

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outputFilename))
	c.Header("Content-Length", fmt.Sprintf("%d", len(stegoData)))

	c.Header("X-Stego-Method", bundle.mode)
	c.Header("X-Stego-Capacity", fmt.Sprintf("%d", report.CapacityBits))
	c.Header("X-Stego-Utilization", fmt.Sprintf("%.1f", report.UtilizationPercent))
	if bundle.mode == ModePCM {
		psnr := audio.CalculatePSNR(bundle.original, bundle.samples)
		c.Header("X-Stego-PSNR", formatPSNR(psnr))
	}

	c.Data(http.StatusOK, contentType, stegoData)
}

func (h *StegoHandler) ExtractMessage(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil { // 32MB limit
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	key := c.PostForm("key")
	mode := c.PostForm("mode")

	if err := crypto.ValidateKey(key); err != nil {
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid key: %v", err),
		})
		return
	}

	stegoData, stegoHeader, ok := readFormFile(c, "stego_file", "Stego audio file is required")
	if !ok {
		return
	}

	bundle, err := h.openCarrier(stegoData, stegoHeader.Filename, mode)
	if err != nil {
		c.JSON(statusForError(err), models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to open stego file: %v", err),
		})
		return
	}

	result, err := stego.Extract(bundle.carrier, key)
	if err != nil {
		c.JSON(statusForError(err), models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to extract secret data: %v", err),
		})
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", result.Filename()))
	c.Header("Content-Length", fmt.Sprintf("%d", len(result.Payload)))

	c.Header("X-Stego-NLSB", strconv.Itoa(result.LSBBits))
	c.Header("X-Stego-Encrypted", strconv.FormatBool(result.Encrypted))
	c.Header("X-Stego-Randomized", strconv.FormatBool(result.Randomized))

	c.Data(http.StatusOK, "application/octet-stream", result.Payload)
}

// CheckCapacity reports total embeddable bits for a cover without touching
// it.
func (h *StegoHandler) CheckCapacity(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("Failed to parse form: %v", err)})
		return
	}

	lsbBits, err := strconv.Atoi(c.PostForm("lsb_bits"))
	if err != nil || lsbBits < 1 || lsbBits > 4 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "LSB bits must be between 1 and 4"})
		return
	}

	audioData, audioHeader, ok := readFormFile(c, "audio_file", "Audio file is required")
	if !ok {
		return
	}

	bundle, err := h.openCarrier(audioData, audioHeader.Filename, c.PostForm("mode"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"success": false, "message": fmt.Sprintf("Failed to open cover: %v", err)})
		return
	}

	capacityBits := stego.CapacityBits(bundle.carrier, lsbBits)
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"mode":           bundle.mode,
		"capacity_bits":  capacityBits,
		"capacity_bytes": capacityBits / audio.BitsInByte,
	})
}

// CheckFeasibility runs the full capacity-vs-requirement verdict for a
// cover and secret pair. Pure; nothing is embedded.
func (h *StegoHandler) CheckFeasibility(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("Failed to parse form: %v", err)})
		return
	}

	lsbBits, err := strconv.Atoi(c.PostForm("lsb_bits"))
	if err != nil || lsbBits < 1 || lsbBits > 4 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "LSB bits must be between 1 and 4"})
		return
	}

	audioData, audioHeader, ok := readFormFile(c, "audio_file", "Audio file is required")
	if !ok {
		return
	}
	secretData, secretHeader, ok := readFormFile(c, "secret_file", "Secret file is required")
	if !ok {
		return
	}

	bundle, err := h.openCarrier(audioData, audioHeader.Filename, c.PostForm("mode"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"success": false, "message": fmt.Sprintf("Failed to open cover: %v", err)})
		return
	}

	name, ext := stego.SplitSecretName(secretHeader.Filename)
	report := stego.CheckFeasibility(bundle.carrier, len(secretData), name, ext, lsbBits)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"mode":    bundle.mode,
		"report":  report,
	})
}

// AnalyzeCover reports structural statistics and tags for a cover file.
func (h *StegoHandler) AnalyzeCover(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("Failed to parse form: %v", err)})
		return
	}

	audioData, audioHeader, ok := readFormFile(c, "audio_file", "Audio file is required")
	if !ok {
		return
	}

	var analysis *models.CoverAnalysis
	switch strings.ToLower(filepath.Ext(audioHeader.Filename)) {
	case ".mp3":
		analysis = h.audioDecoder.AnalyzeMP3(audioData)
	case ".wav":
		analysis = h.audioDecoder.AnalyzeWAV(audioData)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Only MP3 and WAV covers can be analyzed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "analysis": analysis})
}

func readFormFile(c *gin.Context, field, missingMsg string) ([]byte, *multipart.FileHeader, bool) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": missingMsg})
		return nil, nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": fmt.Sprintf("Failed to read %s: %v", field, err)})
		return nil, nil, false
	}
	return data, header, true
}

// statusForError maps the codec's error taxonomy onto HTTP statuses:
// capacity and format problems are client errors, a failed search is 422,
// everything else is a 400 input error.
func statusForError(err error) int {
	var capErr *stego.CapacityError
	var fmtErr *stego.FormatError
	var extErr *stego.ExtractError
	switch {
	case errors.As(err, &capErr):
		return http.StatusBadRequest
	case errors.As(err, &fmtErr):
		return http.StatusBadRequest
	case errors.As(err, &extErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func formatPSNR(psnr float64) string {
	if math.IsInf(psnr, 1) {
		return "inf"
	}
	return strconv.FormatFloat(psnr, 'f', 2, 64)
}
