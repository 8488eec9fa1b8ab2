package stego

import (
	"fmt"
	"strings"

	"audiostego-backend/crypto"
	"audiostego-backend/models"
)

// SplitSecretName splits a secret filename at its last dot. The extension
// keeps the dot; a name without one yields an empty extension.
func SplitSecretName(filename string) (name, ext string) {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return filename, ""
	}
	return filename[:idx], filename[idx:]
}

// Embed writes secret into the carrier's slots: build the length-prefixed
// container (optionally encrypting the body first), verify feasibility,
// then write bits group by group in the keyed slot order. The carrier is
// mutated in place; on any error it is returned untouched because the
// feasibility gate runs before the first write.
func Embed(c Carrier, secret []byte, cfg *models.StegoConfig) error {
	if cfg.LSBBits < 1 || cfg.LSBBits > 4 {
		return fmt.Errorf("lsb bits must be between 1 and 4, got %d", cfg.LSBBits)
	}
	if err := crypto.ValidateKey(cfg.Key); err != nil {
		return fmt.Errorf("invalid key: %w", err)
	}

	body := secret
	if cfg.UseEncryption {
		cipher := crypto.NewExtendedVigenere(cfg.Key)
		body = cipher.Encrypt(secret)
	}

	name, ext := SplitSecretName(cfg.SecretFilename)
	header, err := BuildHeader(cfg.UseEncryption, cfg.UseRandomStart, cfg.LSBBits, len(body), name, ext)
	if err != nil {
		return err
	}
	container := BuildContainer(header, body)

	report := CheckFeasibility(c, len(body), name, ext, cfg.LSBBits)
	if !report.Fits {
		return &CapacityError{
			CapacityBits:       report.CapacityBits,
			NeedBits:           report.NeedBits,
			MarginBits:         report.MarginBits,
			UtilizationPercent: report.UtilizationPercent,
		}
	}

	order := c.SlotOrder(cfg.LSBBits, cfg.UseRandomStart, GenerateSeed(cfg.Key))
	br := NewBitReader(container)

	for _, slot := range order {
		if br.Remaining() == 0 {
			break
		}
		width := c.SlotBits(slot, cfg.LSBBits)
		value, count := br.ReadGroup(width)
		c.WriteSlot(slot, cfg.LSBBits, value, count)
	}

	if br.Remaining() > 0 {
		// The feasibility gate should make this unreachable; fail loudly
		// rather than leave a truncated, unextractable container.
		return &CapacityError{
			CapacityBits:       report.CapacityBits,
			NeedBits:           report.NeedBits,
			MarginBits:         report.MarginBits,
			UtilizationPercent: report.UtilizationPercent,
		}
	}

	return nil
}
