package util

import (
	"fmt"
	"math"
)

// FormatTime formats a position in seconds as m:ss. Fractions are truncated.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	total := int64(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
