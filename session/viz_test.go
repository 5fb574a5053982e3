package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinassist/client"
)

func TestVizRejectsBlankQuery(t *testing.T) {
	v := NewViz(client.VizWordCloud)

	_, err := v.Begin("   ", client.DomainAll)
	require.ErrorIs(t, err, ErrNoQuery)
	assert.Equal(t, MsgNoQuery, err.Error())
	assert.Equal(t, VizIdle, v.Status())
}

func TestVizLifecycle(t *testing.T) {
	v := NewViz(client.VizWordCloud)
	v.SetKind(client.VizSimilarity)

	attempt, err := v.Begin("  knee ligament recovery  ", client.DomainKneeInjuries)
	require.NoError(t, err)
	assert.Equal(t, "knee ligament recovery", attempt.Query)
	assert.Equal(t, client.VizSimilarity, attempt.Kind)
	assert.Equal(t, VizGenerating, v.Status())

	require.True(t, v.Resolve(attempt.Seq, "data:image/png;base64,AAAA", nil))
	assert.Equal(t, VizReady, v.Status())
	assert.Equal(t, "data:image/png;base64,AAAA", v.Image())
}

func TestVizFailureUsesDetailThenFallback(t *testing.T) {
	v := NewViz(client.VizWordCloud)

	attempt, err := v.Begin("question", client.DomainAll)
	require.NoError(t, err)
	require.True(t, v.Resolve(attempt.Seq, "", &client.RequestError{Status: 500, Detail: "index not built"}))
	assert.Equal(t, VizFailed, v.Status())
	assert.Equal(t, "index not built", v.Err())
	assert.Empty(t, v.Image())

	attempt, err = v.Begin("question", client.DomainAll)
	require.NoError(t, err)
	require.True(t, v.Resolve(attempt.Seq, "", &client.RequestError{Status: 502}))
	assert.Equal(t, MsgGraphFallback, v.Err())
}

func TestRetriggerDiscardsPreviousImage(t *testing.T) {
	v := NewViz(client.VizWordCloud)

	a, err := v.Begin("question", client.DomainAll)
	require.NoError(t, err)
	require.True(t, v.Resolve(a.Seq, "image-a", nil))
	require.Equal(t, "image-a", v.Image())

	// Triggering again clears the old image before the new one resolves.
	b, err := v.Begin("question", client.DomainAll)
	require.NoError(t, err)
	assert.Empty(t, v.Image())
	assert.Equal(t, VizGenerating, v.Status())

	// The superseded attempt's late arrival is dropped.
	assert.False(t, v.Resolve(a.Seq, "image-a-late", nil))
	assert.Empty(t, v.Image())

	require.True(t, v.Resolve(b.Seq, "image-b", nil))
	assert.Equal(t, "image-b", v.Image())
}

func TestVizLastWriteWins(t *testing.T) {
	v := NewViz(client.VizWordCloud)

	a, err := v.Begin("question", client.DomainAll)
	require.NoError(t, err)
	b, err := v.Begin("question", client.DomainAll)
	require.NoError(t, err)

	require.True(t, v.Resolve(b.Seq, "image-b", nil))
	assert.False(t, v.Resolve(a.Seq, "image-a", nil), "stale in-flight response must be discarded")
	assert.Equal(t, "image-b", v.Image())
}

func TestResetSupersedesInFlightGeneration(t *testing.T) {
	v := NewViz(client.VizWordCloud)

	a, err := v.Begin("question", client.DomainAll)
	require.NoError(t, err)

	// A new query submission resets the lane while the request is out.
	v.Reset()
	assert.Equal(t, VizIdle, v.Status())
	assert.Empty(t, v.Image())

	assert.False(t, v.Resolve(a.Seq, "stale", nil))
	assert.Empty(t, v.Image())
}
