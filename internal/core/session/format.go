package session

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration as hh:mm:ss.
// Hours are the hour-of-day component, so whole days are not shown.
func FormatDuration(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	seconds := int64(value / time.Second)
	hours := (seconds / 3600) % 24
	minutes := (seconds / 60) % 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
