package timer

import (
	"fmt"
	"strings"
)

// FormatHuman renders seconds as a spoken-style sentence, e.g.
// "1 hour 30 minutes". Zero components are omitted except when the total
// itself is zero.
func FormatHuman(seconds int) string {
	var parts []string
	if seconds >= 3600 {
		h := seconds / 3600
		parts = append(parts, fmt.Sprintf("%d hour%s", h, plural(h)))
		seconds %= 3600
	}
	if seconds >= 60 {
		m := seconds / 60
		parts = append(parts, fmt.Sprintf("%d minute%s", m, plural(m)))
		seconds %= 60
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%d second%s", seconds, plural(seconds)))
	}
	return strings.Join(parts, " ")
}

// FormatDelay renders seconds as a compact scheduler token, e.g. "1h30m",
// suitable for systemd OnActiveSec. All-zero input yields "0s".
func FormatDelay(seconds int) string {
	var b strings.Builder
	if seconds >= 3600 {
		fmt.Fprintf(&b, "%dh", seconds/3600)
		seconds %= 3600
	}
	if seconds >= 60 {
		fmt.Fprintf(&b, "%dm", seconds/60)
		seconds %= 60
	}
	if seconds > 0 {
		fmt.Fprintf(&b, "%ds", seconds)
	}
	if b.Len() == 0 {
		return "0s"
	}
	return b.String()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
