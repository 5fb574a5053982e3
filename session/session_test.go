package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinassist/client"
)

func bundleWithResponse(text string) *client.AnswerBundle {
	return &client.AnswerBundle{
		Response:   text,
		Confidence: "high",
		Sources: []client.Source{
			{Source: "doc1.pdf", Page: 3, ChunkType: "paragraph", Similarity: 0.91},
		},
	}
}

func TestBeginRejectsBlankQuery(t *testing.T) {
	q := NewQuery()

	for _, text := range []string{"", "   ", "\n\t  "} {
		_, err := q.Begin(text, client.DomainAll)
		require.ErrorIs(t, err, ErrBlankQuery)
		assert.Equal(t, MsgEmptyQuery, err.Error())
		assert.Equal(t, StatusIdle, q.Status(), "blank submit must not enter Submitting")
	}
}

func TestBlankSubmitKeepsPriorAnswer(t *testing.T) {
	q := NewQuery()

	attempt, err := q.Begin("What are the symptoms of COVID-19?", client.DomainCOVID)
	require.NoError(t, err)
	require.True(t, q.Resolve(attempt.Seq, bundleWithResponse("ok"), nil))

	_, err = q.Begin("   ", client.DomainCOVID)
	require.ErrorIs(t, err, ErrBlankQuery)

	assert.Equal(t, StatusSucceeded, q.Status())
	require.NotNil(t, q.Bundle())
	assert.Equal(t, "ok", q.Bundle().Response)
}

func TestSubmitLifecycle(t *testing.T) {
	q := NewQuery()
	assert.Equal(t, StatusIdle, q.Status())

	attempt, err := q.Begin("  What are the symptoms of COVID-19?  ", client.DomainCOVID)
	require.NoError(t, err)
	assert.Equal(t, "What are the symptoms of COVID-19?", attempt.Query, "query text is trimmed before submission")
	assert.Equal(t, client.DomainCOVID, attempt.Domain)
	assert.Equal(t, StatusSubmitting, q.Status())
	assert.True(t, q.InFlight())

	bundle := bundleWithResponse("Fever, cough and fatigue are common.")
	require.True(t, q.Resolve(attempt.Seq, bundle, nil))
	assert.Equal(t, StatusSucceeded, q.Status())
	assert.Same(t, bundle, q.Bundle())
	assert.Empty(t, q.Err())
}

func TestFailureUsesBackendDetail(t *testing.T) {
	q := NewQuery()

	attempt, err := q.Begin("anything", client.DomainAll)
	require.NoError(t, err)

	require.True(t, q.Resolve(attempt.Seq, nil, &client.RequestError{Status: 500, Detail: "index not built"}))
	assert.Equal(t, StatusFailed, q.Status())
	assert.Equal(t, "index not built", q.Err())
	assert.Nil(t, q.Bundle(), "never both an answer and an error")
}

func TestFailureFallsBackWithoutDetail(t *testing.T) {
	q := NewQuery()

	attempt, err := q.Begin("anything", client.DomainAll)
	require.NoError(t, err)

	require.True(t, q.Resolve(attempt.Seq, nil, &client.RequestError{Status: 502}))
	assert.Equal(t, MsgQueryFallback, q.Err())
}

func TestResubmissionClearsPriorOutcome(t *testing.T) {
	q := NewQuery()

	a, err := q.Begin("first", client.DomainAll)
	require.NoError(t, err)
	require.True(t, q.Resolve(a.Seq, nil, &client.RequestError{Detail: "boom"}))
	require.Equal(t, StatusFailed, q.Status())

	b, err := q.Begin("second", client.DomainDiabetes)
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitting, q.Status())
	assert.Nil(t, q.Bundle())
	assert.Empty(t, q.Err(), "entering Submitting clears the previous error")

	require.True(t, q.Resolve(b.Seq, bundleWithResponse("ok"), nil))

	// And succeeded -> submitting clears the bundle too.
	_, err = q.Begin("third", client.DomainAll)
	require.NoError(t, err)
	assert.Nil(t, q.Bundle())
	assert.Empty(t, q.Err())
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	q := NewQuery()

	a, err := q.Begin("question A", client.DomainAll)
	require.NoError(t, err)

	// B is issued before A's response arrives.
	b, err := q.Begin("question B", client.DomainAll)
	require.NoError(t, err)

	// B's response lands first and wins.
	bundleB := bundleWithResponse("answer B")
	require.True(t, q.Resolve(b.Seq, bundleB, nil))

	// A's late response must be dropped, not displayed.
	assert.False(t, q.Resolve(a.Seq, bundleWithResponse("answer A"), nil))
	assert.Same(t, bundleB, q.Bundle())

	// A late error for A must not disturb B's answer either.
	assert.False(t, q.Resolve(a.Seq, nil, errors.New("late failure")))
	assert.Equal(t, StatusSucceeded, q.Status())
}

func TestFeedbackRequiresAnswer(t *testing.T) {
	q := NewQuery()

	_, ok := q.FeedbackFor(client.RatingUp)
	assert.False(t, ok, "feedback without an answer is a no-op")

	attempt, err := q.Begin("question", client.DomainAll)
	require.NoError(t, err)

	_, ok = q.FeedbackFor(client.RatingUp)
	assert.False(t, ok, "feedback while submitting is a no-op")

	require.True(t, q.Resolve(attempt.Seq, bundleWithResponse("the answer"), nil))

	payload, ok := q.FeedbackFor(client.RatingDown)
	require.True(t, ok)
	assert.Equal(t, "question", payload.Query)
	assert.Equal(t, "the answer", payload.Answer)
	assert.Equal(t, client.RatingDown, payload.Rating)
}

func TestFeedbackIsRepeatable(t *testing.T) {
	q := NewQuery()
	attempt, err := q.Begin("question", client.DomainAll)
	require.NoError(t, err)
	require.True(t, q.Resolve(attempt.Seq, bundleWithResponse("answer"), nil))

	first, ok := q.FeedbackFor(client.RatingUp)
	require.True(t, ok)
	second, ok := q.FeedbackFor(client.RatingUp)
	require.True(t, ok)

	assert.Equal(t, first, second, "identical payloads, no deduplication")
	assert.Equal(t, StatusSucceeded, q.Status(), "rating never mutates session state")
}

func TestMessageExtraction(t *testing.T) {
	assert.Equal(t, "index not built",
		Message(&client.RequestError{Status: 500, Detail: "index not built"}, MsgQueryFallback))
	assert.Equal(t, MsgQueryFallback,
		Message(&client.RequestError{Status: 500}, MsgQueryFallback))
	assert.Equal(t, MsgQueryFallback,
		Message(errors.New("connection refused"), MsgQueryFallback))
}
