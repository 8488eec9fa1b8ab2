package stego

import (
	"audiostego-backend/models"
)

// CapacityBits sums the bit capacity of every slot the carrier exposes for
// the given LSB depth. Pure; safe to call before any destructive write.
func CapacityBits(c Carrier, lsbBits int) int {
	total := 0
	for i := 0; i < c.SlotCount(lsbBits); i++ {
		total += c.SlotBits(i, lsbBits)
	}
	return total
}

// RequiredBits computes the bits needed to embed a secret of secretLen
// bytes with the given name and extension: the u32 length prefix plus the
// header plus the body, eight bits per byte. Encryption never changes the
// body length with this cipher.
func RequiredBits(secretLen int, name, ext string) int {
	headerLen := headerFixedLen + len(name) + len(ext)
	return 8 * (4 + headerLen + secretLen)
}

// CheckFeasibility produces the capacity-vs-requirement verdict gating an
// embed attempt. Recomputed per call, never persisted.
func CheckFeasibility(c Carrier, secretLen int, name, ext string, lsbBits int) *models.FeasibilityReport {
	capacity := CapacityBits(c, lsbBits)
	need := RequiredBits(secretLen, name, ext)

	report := &models.FeasibilityReport{
		CapacityBits: capacity,
		NeedBits:     need,
		Fits:         need <= capacity,
		MarginBits:   capacity - need,
	}
	if capacity > 0 {
		report.UtilizationPercent = 100 * float64(need) / float64(capacity)
	}
	return report
}
