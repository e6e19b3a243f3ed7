package format

import (
	"fmt"
	"strings"
)

// FormatNumberString inserts a comma every three digits, counting from the
// right. A leading minus sign is preserved.
func FormatNumberString(s string) string {
	if s == "" {
		return ""
	}
	prefix := ""
	if s[0] == '-' {
		prefix, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return prefix + s
	}

	var b strings.Builder
	b.Grow(len(prefix) + n + (n-1)/3)
	b.WriteString(prefix)
	head := n % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(s[:head])
	for i := head; i < n; i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
