package util

import (
	"fmt"
	"time"
)

// FormatDuration formats a duration as m:ss.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatHz formats a frequency compactly: 440 → "440Hz", 48000 → "48kHz".
func FormatHz(hz int) string {
	if hz >= 1000 {
		if hz%1000 == 0 {
			return fmt.Sprintf("%dkHz", hz/1000)
		}
		return fmt.Sprintf("%.1fkHz", float64(hz)/1000)
	}
	return fmt.Sprintf("%dHz", hz)
}
