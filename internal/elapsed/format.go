// Package elapsed renders the "time together" counter shown in the gallery
// header.
package elapsed

import (
	"fmt"
	"strings"
	"time"
)

const (
	NotStarted = "Timer hasn't started yet."
	prefix     = "我们❤ "
)

// Format renders d as days, hours, minutes and seconds. Components are
// truncated, never rounded. The day segment is omitted when zero.
func Format(d time.Duration) string {
	if d < 0 {
		return NotStarted
	}

	total := int64(d / time.Second)
	days := total / 86400
	hours := total % 86400 / 3600
	minutes := total % 3600 / 60
	seconds := total % 60

	var b strings.Builder
	b.WriteString(prefix)
	if days > 0 {
		fmt.Fprintf(&b, "%d天 ", days)
	}
	fmt.Fprintf(&b, "%02d小时 %02d分钟 %02d秒", hours, minutes, seconds)
	return b.String()
}

// FormatMillis is Format for a duration given in milliseconds.
func FormatMillis(ms int64) string {
	return Format(time.Duration(ms) * time.Millisecond)
}
