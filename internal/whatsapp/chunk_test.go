package whatsapp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunkShortTextSingleSegment(t *testing.T) {
	out := Chunk("  hello there  ", 3500)
	require.Equal(t, []string{"hello there"}, out)
}

func TestChunkPrefersNewlineBoundary(t *testing.T) {
	text := strings.Repeat("a", 90) + "\n" + strings.Repeat("b", 50)
	out := Chunk(text, 100)

	require.Len(t, out, 2)
	require.Equal(t, strings.Repeat("a", 90), out[0])
	require.Equal(t, strings.Repeat("b", 50), out[1])
}

func TestChunkFallsBackToSpace(t *testing.T) {
	text := strings.Repeat("a", 80) + " " + strings.Repeat("b", 60)
	out := Chunk(text, 100)

	require.Len(t, out, 2)
	require.Equal(t, strings.Repeat("a", 80), out[0])
	require.Equal(t, strings.Repeat("b", 60), out[1])
}

func TestChunkHardCutWithoutBoundary(t *testing.T) {
	text := strings.Repeat("a", 250)
	out := Chunk(text, 100)

	require.Equal(t, []string{
		strings.Repeat("a", 100),
		// One character is consumed at each cut point.
		strings.Repeat("a", 100),
		strings.Repeat("a", 48),
	}, out)
}

func TestChunkSegmentsNeverExceedMax(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet\n", 500)
	out := Chunk(text, 100)

	require.NotEmpty(t, out)
	for _, seg := range out {
		require.LessOrEqual(t, len([]rune(seg)), 100)
		require.NotEmpty(t, strings.TrimSpace(seg))
	}
}

func TestChunkPreservesContentOrder(t *testing.T) {
	text := strings.Repeat("word ", 200)
	out := Chunk(text, 100)

	joined := strings.Join(out, " ")
	require.Equal(t, strings.Fields(text), strings.Fields(joined))
}
