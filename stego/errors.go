package stego

import "fmt"

// FormatError reports a cover with no usable slots or a container whose
// header fails structural validation.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format error: %s", e.Reason)
}

// CapacityError reports a payload that requires more bits than the cover
// offers. It carries the full arithmetic for user-facing diagnostics.
type CapacityError struct {
	CapacityBits       int
	NeedBits           int
	MarginBits         int
	UtilizationPercent float64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("capacity error: need %d bits, capacity %d bits (margin %d, utilization %.1f%%)",
		e.NeedBits, e.CapacityBits, e.MarginBits, e.UtilizationPercent)
}

// ExtractError reports that the exhaustive parameter search found no valid
// header. Wrong key, wrong file and corrupted cover are indistinguishable
// at this level.
type ExtractError struct {
	Reason string
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract error: %s", e.Reason)
}
