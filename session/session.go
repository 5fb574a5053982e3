// Package session owns the lifecycle of a single query conversation: the
// draft question, the submission state machine, the resulting answer or
// error, and the derived feedback state. It performs no I/O itself; the
// caller runs the gateway call and feeds the outcome back through Resolve,
// tagged with the attempt's sequence token so stale responses are dropped.
package session

import (
	"errors"
	"strings"

	"clinassist/client"
)

// User-facing messages for local and fallback failures.
const (
	MsgEmptyQuery    = "Please enter a question"
	MsgQueryFallback = "An error occurred. Please make sure the backend is running."
	MsgNoQuery       = "Please submit a query first"
	MsgGraphFallback = "Error generating graph"
)

// ErrBlankQuery is the local validation failure for a blank or
// whitespace-only question. It never reaches the network and leaves any
// prior answer in place.
var ErrBlankQuery = errors.New(MsgEmptyQuery)

// Status is the query lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Attempt identifies one issued submission. Seq must be handed back to
// Resolve along with the outcome; only the latest attempt's outcome is
// applied.
type Attempt struct {
	Seq    uint64
	Query  string
	Domain client.Domain
}

// Query is the query-lane orchestrator. At most one of bundle or errMsg is
// set at any time.
type Query struct {
	status    Status
	submitted string
	domain    client.Domain
	bundle    *client.AnswerBundle
	errMsg    string
	seq       uint64
}

// NewQuery returns an idle session.
func NewQuery() *Query {
	return &Query{}
}

// Begin validates the draft text and, if it is non-blank once trimmed,
// moves the lane into Submitting: the previous bundle and error are
// cleared and a fresh Attempt is issued. Resubmission is allowed from any
// state, including while an earlier attempt is still in flight; the
// sequence token makes the newer attempt win.
//
// A blank draft returns ErrBlankQuery without touching lane state.
func (q *Query) Begin(text string, domain client.Domain) (Attempt, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Attempt{}, ErrBlankQuery
	}

	q.seq++
	q.status = StatusSubmitting
	q.submitted = trimmed
	q.domain = domain
	q.bundle = nil
	q.errMsg = ""

	return Attempt{Seq: q.seq, Query: trimmed, Domain: domain}, nil
}

// Resolve applies the outcome of the attempt identified by seq. Outcomes
// of superseded attempts are discarded; the return value reports whether
// the outcome was applied.
func (q *Query) Resolve(seq uint64, bundle *client.AnswerBundle, err error) bool {
	if seq != q.seq || q.status != StatusSubmitting {
		return false
	}
	if err != nil {
		q.status = StatusFailed
		q.bundle = nil
		q.errMsg = Message(err, MsgQueryFallback)
		return true
	}
	q.status = StatusSucceeded
	q.bundle = bundle
	q.errMsg = ""
	return true
}

// Status returns the lane's lifecycle state.
func (q *Query) Status() Status {
	return q.status
}

// InFlight reports whether an attempt is awaiting its outcome.
func (q *Query) InFlight() bool {
	return q.status == StatusSubmitting
}

// Bundle returns the current answer, or nil outside Succeeded.
func (q *Query) Bundle() *client.AnswerBundle {
	return q.bundle
}

// Err returns the current backend error message, or "".
func (q *Query) Err() string {
	return q.errMsg
}

// Submitted returns the trimmed text of the most recent submission.
func (q *Query) Submitted() string {
	return q.submitted
}

// Domain returns the domain filter of the most recent submission.
func (q *Query) Domain() client.Domain {
	return q.domain
}

// Feedback is the payload for a rating on the current answer.
type Feedback struct {
	Query  string
	Answer string
	Rating client.Rating
}

// FeedbackFor builds the feedback payload for the current answer. It
// reports false when no answer is present, in which case the rating is a
// no-op. Repeated calls with the same rating yield identical payloads;
// deduplication is deliberately not performed.
func (q *Query) FeedbackFor(rating client.Rating) (Feedback, bool) {
	if q.status != StatusSucceeded || q.bundle == nil {
		return Feedback{}, false
	}
	return Feedback{
		Query:  q.submitted,
		Answer: q.bundle.Response,
		Rating: rating,
	}, true
}

// Message picks the user-facing text for a gateway failure: the backend's
// structured detail when present, the given fallback otherwise.
func Message(err error, fallback string) string {
	var reqErr *client.RequestError
	if errors.As(err, &reqErr) && reqErr.Detail != "" {
		return reqErr.Detail
	}
	return fallback
}
