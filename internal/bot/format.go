package bot

import (
	"fmt"
	"strings"
	"time"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// formatSize renders a byte count with 1024-based units.
func formatSize(size int64) string {
	if size == 0 {
		return "0 B"
	}

	value := float64(size)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", value, sizeUnits[unit])
}

// formatDate renders a stored RFC 3339 timestamp for display. Malformed
// values are shown as-is.
func formatDate(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Format("2006-01-02 15:04")
}

// Transfer phases for progress rendering. Download occupies the first half
// of the user-visible percentage, upload the second.
const (
	phaseDownload = "download"
	phaseUpload   = "upload"
)

// renderProgress draws the progress message for a total-scale percentage.
func renderProgress(phase string, percent float64) string {
	filled := int(percent / 5)
	if filled > 20 {
		filled = 20
	}

	if phase == phaseDownload {
		// Download phase tops out at 50%, ten bar slots.
		if filled > 10 {
			filled = 10
		}
		return fmt.Sprintf("⚡ *Downloading* %.0f%%\n%s%s",
			percent, strings.Repeat("▓", filled), strings.Repeat("░", 10-filled))
	}
	return fmt.Sprintf("🚀 *Uploading to cloud* %.0f%%\n%s%s",
		percent, strings.Repeat("🔥", filled), strings.Repeat("⭕", 20-filled))
}
