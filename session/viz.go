package session

import (
	"errors"
	"strings"

	"clinassist/client"
)

// ErrNoQuery is the local validation failure for triggering a
// visualization before any question has been typed.
var ErrNoQuery = errors.New(MsgNoQuery)

// VizStatus is the visualization lane's lifecycle state.
type VizStatus int

const (
	VizIdle VizStatus = iota
	VizGenerating
	VizReady
	VizFailed
)

func (s VizStatus) String() string {
	switch s {
	case VizIdle:
		return "idle"
	case VizGenerating:
		return "generating"
	case VizReady:
		return "ready"
	case VizFailed:
		return "failed"
	}
	return "unknown"
}

// VizAttempt identifies one issued graph generation.
type VizAttempt struct {
	Seq    uint64
	Query  string
	Domain client.Domain
	Kind   client.VizKind
}

// Viz is the visualization lane. It runs independently of the query lane
// but reads the live query text and domain at the moment of triggering —
// a deliberate policy carried over from the original behavior, not a
// snapshot from when the last answer arrived.
type Viz struct {
	kind   client.VizKind
	status VizStatus
	image  string
	errMsg string
	seq    uint64
}

// NewViz returns an idle visualization lane preselecting the given kind.
func NewViz(kind client.VizKind) *Viz {
	return &Viz{kind: kind}
}

// SetKind selects which visualization the next trigger requests.
func (v *Viz) SetKind(kind client.VizKind) {
	v.kind = kind
}

// Kind returns the currently selected visualization kind.
func (v *Viz) Kind() client.VizKind {
	return v.kind
}

// Begin validates the live query text and, if non-blank, discards any
// previous image and issues a fresh attempt (last-write-wins; an older
// in-flight generation is superseded). A blank text returns ErrNoQuery
// without a network call.
func (v *Viz) Begin(text string, domain client.Domain) (VizAttempt, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return VizAttempt{}, ErrNoQuery
	}

	v.seq++
	v.status = VizGenerating
	v.image = ""
	v.errMsg = ""

	return VizAttempt{Seq: v.seq, Query: trimmed, Domain: domain, Kind: v.kind}, nil
}

// Resolve applies the outcome of the attempt identified by seq, dropping
// outcomes of superseded attempts.
func (v *Viz) Resolve(seq uint64, image string, err error) bool {
	if seq != v.seq || v.status != VizGenerating {
		return false
	}
	if err != nil {
		v.status = VizFailed
		v.image = ""
		v.errMsg = Message(err, MsgGraphFallback)
		return true
	}
	v.status = VizReady
	v.image = image
	v.errMsg = ""
	return true
}

// Reset discards the current image and returns the lane to idle. A new
// query submission calls this so stale evidence graphics are never shown
// against a new answer; an in-flight generation is superseded as well.
func (v *Viz) Reset() {
	v.seq++
	v.status = VizIdle
	v.image = ""
	v.errMsg = ""
}

// Status returns the lane's lifecycle state.
func (v *Viz) Status() VizStatus {
	return v.status
}

// Image returns the current image payload, or "" when none is ready.
func (v *Viz) Image() string {
	return v.image
}

// Err returns the current error message, or "".
func (v *Viz) Err() string {
	return v.errMsg
}
