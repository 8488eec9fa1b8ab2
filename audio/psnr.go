// Package audio is made to handle psnr for audios
package audio

import (
	"math"
)

// maxSampleValue is the peak amplitude of signed 16-bit PCM.
const maxSampleValue = 32767.0

// CalculatePSNR measures the distortion the embed introduced, in dB:
// 10·log10(MAX²/MSE) with MAX=32767. Identical signals yield +Inf.
// Advisory only; it never gates success or failure.
func CalculatePSNR(original, stego []int16) float64 {
	if len(original) != len(stego) || len(original) == 0 {
		return 0.0
	}

	var mse float64
	for i := range original {
		diff := float64(original[i]) - float64(stego[i])
		mse += diff * diff
	}
	mse /= float64(len(original))

	if mse == 0 {
		return math.Inf(1)
	}

	return 10 * math.Log10(maxSampleValue*maxSampleValue/mse)
}

// ValidatePSNR reports whether a PSNR value meets a quality threshold.
func ValidatePSNR(psnr float64, threshold float64) bool {
	if math.IsInf(psnr, 1) {
		return true
	}
	return psnr >= threshold
}
