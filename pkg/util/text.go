package util

import "strings"

// EscapeCRLF returns a copy of s with carriage return and newline characters
// replaced by their escaped forms ("\\r" and "\\n"). It is used when logging
// raw wire payloads so a multi-line HTTP message fits on a single log line.
func EscapeCRLF(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\r':
			sb.WriteString("\\r")
		case '\n':
			sb.WriteString("\\n")
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}
