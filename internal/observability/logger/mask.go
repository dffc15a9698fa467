package logger

import "strings"

// MaskContact hides a tenant contact number in log output, keeping the
// last four digits so support can still correlate receipts.
func MaskContact(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return maskLast4(value)
}

func maskLast4(value string) string {
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	return strings.Repeat("*", len(value)-4) + value[len(value)-4:]
}
