package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfidence(t *testing.T) {
	assert.Equal(t, ConfidenceHigh, ParseConfidence("high"))
	assert.Equal(t, ConfidenceMedium, ParseConfidence("medium"))
	assert.Equal(t, ConfidenceLow, ParseConfidence("low"))

	// Anything outside the closed set lands on the neutral fallback
	// without an error.
	for _, s := range []string{"", "HIGH", "very high", "0.93", "unknown"} {
		assert.Equal(t, ConfidenceUnknown, ParseConfidence(s), "input %q", s)
	}
}

func sources(n int) []Source {
	out := make([]Source, n)
	for i := range out {
		out[i] = Source{Source: "doc.pdf", Page: i, Similarity: 1 - float64(i)/100}
	}
	return out
}

func TestTopSourcesWindow(t *testing.T) {
	cases := []struct {
		total     int
		wantShown int
		wantExtra int
	}{
		{0, 0, 0},
		{1, 1, 0},
		{5, 5, 0},
		{6, 5, 1},
		{12, 5, 7},
	}
	for _, tc := range cases {
		b := &AnswerBundle{Sources: sources(tc.total)}
		top := b.TopSources()
		assert.Len(t, top, tc.wantShown, "total=%d", tc.total)
		assert.Equal(t, tc.wantExtra, b.ExtraSourceCount(), "total=%d", tc.total)

		// Received order is preserved, never re-sorted.
		for i, src := range top {
			assert.Equal(t, i, src.Page)
		}
	}
}

func TestDomainValidity(t *testing.T) {
	for _, d := range KnownDomains() {
		assert.True(t, d.Valid())
	}
	assert.False(t, Domain("oncology").Valid())
	assert.Equal(t, "All Domains", DomainAll.DisplayName())
}

func TestDecodeImage(t *testing.T) {
	raw, ext, err := DecodeImage("data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "png", ext)
	assert.Equal(t, []byte("hello"), raw)

	raw, ext, err = DecodeImage("aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "png", ext)
	assert.Equal(t, []byte("hello"), raw)

	_, _, err = DecodeImage("data:image/png;base64,%%%")
	assert.Error(t, err)

	assert.True(t, IsRemoteImage("https://cdn.example.com/graph.png"))
	assert.False(t, IsRemoteImage("data:image/png;base64,aGVsbG8="))
}
