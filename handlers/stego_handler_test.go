package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"audiostego-backend/audio"
	"audiostego-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewStegoHandler()
	api := router.Group("/api/v1")
	api.GET("/health", h.HealthCheck)
	api.POST("/stego/insert", h.InsertMessage)
	api.POST("/stego/extract", h.ExtractMessage)
	api.POST("/stego/capacity", h.CheckCapacity)
	api.POST("/stego/feasibility", h.CheckFeasibility)
	api.POST("/stego/analyze", h.AnalyzeCover)
	return router
}

func testWAVCover(t *testing.T, sampleCount int) []byte {
	t.Helper()
	samples := make([]int16, sampleCount)
	for i := range samples {
		samples[i] = int16(i*17 - 9000)
	}
	decoder := audio.NewAudioDecoder()
	data, err := decoder.EncodeWAV(samples, &models.AudioMetadata{
		SampleRate: 44100,
		Channels:   2,
		BitDepth:   16,
	})
	require.NoError(t, err)
	return data
}

type formFile struct {
	field, name string
	data        []byte
}

func postMultipart(t *testing.T, router *gin.Engine, url string, fields map[string]string, files []formFile) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := writer.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = fw.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestInsertExtractWAVRoundTrip(t *testing.T) {
	router := newTestRouter()
	cover := testWAVCover(t, 20000)
	secret := []byte("the quick brown fox jumps over the lazy dog")

	insert := postMultipart(t, router, "/api/v1/stego/insert",
		map[string]string{
			"key":              "round-trip-key",
			"lsb_bits":         "2",
			"use_encryption":   "true",
			"use_random_start": "true",
		},
		[]formFile{
			{"audio_file", "cover.wav", cover},
			{"secret_file", "note.txt", secret},
		})
	require.Equal(t, http.StatusOK, insert.Code, insert.Body.String())
	assert.Equal(t, ModePCM, insert.Header().Get("X-Stego-Method"))
	assert.NotEmpty(t, insert.Header().Get("X-Stego-PSNR"))
	assert.Contains(t, insert.Header().Get("Content-Disposition"), "cover_stego.wav")

	extract := postMultipart(t, router, "/api/v1/stego/extract",
		map[string]string{"key": "round-trip-key"},
		[]formFile{{"stego_file", "cover_stego.wav", insert.Body.Bytes()}})
	require.Equal(t, http.StatusOK, extract.Code, extract.Body.String())
	assert.Equal(t, secret, extract.Body.Bytes())
	assert.Contains(t, extract.Header().Get("Content-Disposition"), "note.txt")
	assert.Equal(t, "2", extract.Header().Get("X-Stego-NLSB"))
	assert.Equal(t, "true", extract.Header().Get("X-Stego-Encrypted"))
	assert.Equal(t, "true", extract.Header().Get("X-Stego-Randomized"))
}

func TestInsertRejectsMissingKey(t *testing.T) {
	router := newTestRouter()
	rec := postMultipart(t, router, "/api/v1/stego/insert",
		map[string]string{"lsb_bits": "2"},
		[]formFile{
			{"audio_file", "cover.wav", testWAVCover(t, 4000)},
			{"secret_file", "s.txt", []byte("x")},
		})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInsertRejectsBadLSBBits(t *testing.T) {
	router := newTestRouter()
	rec := postMultipart(t, router, "/api/v1/stego/insert",
		map[string]string{"key": "k", "lsb_bits": "9"},
		[]formFile{
			{"audio_file", "cover.wav", testWAVCover(t, 4000)},
			{"secret_file", "s.txt", []byte("x")},
		})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInsertRejectsOversizedSecret(t *testing.T) {
	router := newTestRouter()
	big := make([]byte, 64*1024)
	rec := postMultipart(t, router, "/api/v1/stego/insert",
		map[string]string{"key": "k", "lsb_bits": "1"},
		[]formFile{
			{"audio_file", "cover.wav", testWAVCover(t, 2000)},
			{"secret_file", "big.bin", big},
		})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "capacity")
}

func TestCapacityEndpoint(t *testing.T) {
	router := newTestRouter()
	rec := postMultipart(t, router, "/api/v1/stego/capacity",
		map[string]string{"lsb_bits": "3"},
		[]formFile{{"audio_file", "cover.wav", testWAVCover(t, 5000)}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"capacity_bits":15000`)
}

func TestFeasibilityEndpoint(t *testing.T) {
	router := newTestRouter()
	rec := postMultipart(t, router, "/api/v1/stego/feasibility",
		map[string]string{"lsb_bits": "1"},
		[]formFile{
			{"audio_file", "cover.wav", testWAVCover(t, 10000)},
			{"secret_file", "tiny.txt", []byte("hi")},
		})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"fits":true`)
}

func TestExtractFromPlainCoverFails(t *testing.T) {
	router := newTestRouter()
	rec := postMultipart(t, router, "/api/v1/stego/extract",
		map[string]string{"key": "nothing-here"},
		[]formFile{{"stego_file", "plain.wav", testWAVCover(t, 8000)}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAnalyzeWAVCover(t *testing.T) {
	router := newTestRouter()
	rec := postMultipart(t, router, "/api/v1/stego/analyze", nil,
		[]formFile{{"audio_file", "cover.wav", testWAVCover(t, 6000)}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"format":"wav"`)
	assert.Contains(t, rec.Body.String(), `"total_samples":6000`)
}
