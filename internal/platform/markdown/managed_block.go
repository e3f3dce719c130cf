package markdown

import "strings"

// ReplaceManagedBlock swaps the text between the markers for generated,
// keeping everything around the block. Without markers the block is
// appended.
func ReplaceManagedBlock(body, startMarker, endMarker, generated string) string {
	start := strings.Index(body, startMarker)
	end := strings.Index(body, endMarker)
	block := startMarker + "\n" + strings.TrimSpace(generated) + "\n" + endMarker

	if start >= 0 && end > start {
		end += len(endMarker)
		return body[:start] + block + body[end:]
	}

	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return block + "\n"
	}
	if strings.HasSuffix(body, "\n") {
		return body + "\n" + block + "\n"
	}
	return body + "\n\n" + block + "\n"
}

// ManagedBlock returns the text between the markers.
func ManagedBlock(body, startMarker, endMarker string) (string, bool) {
	start := strings.Index(body, startMarker)
	end := strings.Index(body, endMarker)
	if start < 0 || end < start+len(startMarker) {
		return "", false
	}
	return strings.TrimSpace(body[start+len(startMarker) : end]), true
}
