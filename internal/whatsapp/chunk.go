package whatsapp

import (
	"strings"

	"github.com/siteflow/orderbot/internal/config"
)

// Chunk splits text into segments of at most maxLen runes, preferring to cut
// at a newline, then a space, inside the last part of each window. Segments
// are trimmed and empty ones dropped; concatenation order is preserved.
func Chunk(text string, maxLen int) []string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return []string{strings.TrimSpace(text)}
	}

	var chunks []string
	pos := 0
	for pos < len(runes) {
		end := pos + maxLen
		if end < len(runes) {
			searchStart := end - config.ChunkBoundaryWindow
			if searchStart < pos {
				searchStart = pos
			}
			window := string(runes[searchStart:end])
			if idx := strings.LastIndex(window, "\n"); idx != -1 {
				end = searchStart + len([]rune(window[:idx]))
			} else if idx := strings.LastIndex(window, " "); idx != -1 {
				end = searchStart + len([]rune(window[:idx]))
			}
		} else {
			end = len(runes)
		}

		if chunk := strings.TrimSpace(string(runes[pos:end])); chunk != "" {
			chunks = append(chunks, chunk)
		}

		// Skip the boundary character itself.
		pos = end + 1
	}

	if len(chunks) == 0 {
		return []string{strings.TrimSpace(text)}
	}
	return chunks
}
