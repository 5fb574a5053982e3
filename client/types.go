package client

import "encoding/json"

// Domain identifies a clinical corpus filter. The empty value means the
// query runs across all indexed domains.
type Domain string

const (
	DomainAll          Domain = ""
	DomainCOVID        Domain = "covid"
	DomainDiabetes     Domain = "diabetes"
	DomainHeartAttack  Domain = "heart_attack"
	DomainKneeInjuries Domain = "knee_injuries"
)

// KnownDomains returns every selectable domain, "all" first.
func KnownDomains() []Domain {
	return []Domain{
		DomainAll,
		DomainCOVID,
		DomainDiabetes,
		DomainHeartAttack,
		DomainKneeInjuries,
	}
}

// Valid reports whether d is a member of the closed domain set.
func (d Domain) Valid() bool {
	switch d {
	case DomainAll, DomainCOVID, DomainDiabetes, DomainHeartAttack, DomainKneeInjuries:
		return true
	}
	return false
}

// DisplayName returns the human-facing label for the domain.
func (d Domain) DisplayName() string {
	switch d {
	case DomainAll:
		return "All Domains"
	case DomainCOVID:
		return "COVID Clinical Research"
	case DomainDiabetes:
		return "Diabetes"
	case DomainHeartAttack:
		return "Heart Attack"
	case DomainKneeInjuries:
		return "Knee Injuries"
	}
	return string(d)
}

// wire returns the JSON representation the backend expects: null for "all
// domains", the id otherwise.
func (d Domain) wire() *string {
	if d == DomainAll {
		return nil
	}
	s := string(d)
	return &s
}

// VizKind selects which visualization the backend renders over the
// retrieved evidence set.
type VizKind string

const (
	VizWordCloud     VizKind = "wordcloud"
	VizTermFrequency VizKind = "term_frequency"
	VizSources       VizKind = "sources"
	VizSimilarity    VizKind = "similarity"
)

// KnownVizKinds returns the closed set of visualization kinds in menu order.
func KnownVizKinds() []VizKind {
	return []VizKind{VizWordCloud, VizTermFrequency, VizSources, VizSimilarity}
}

// DisplayName returns the human-facing label for the visualization kind.
func (k VizKind) DisplayName() string {
	switch k {
	case VizWordCloud:
		return "Word Cloud"
	case VizTermFrequency:
		return "Term Frequency"
	case VizSources:
		return "Source Distribution"
	case VizSimilarity:
		return "Similarity Scores"
	}
	return string(k)
}

// Rating is the binary feedback value attached to an answer.
type Rating string

const (
	RatingUp   Rating = "up"
	RatingDown Rating = "down"
)

// Confidence is the backend's self-assessment of an answer, parsed into a
// closed set so consumers can switch exhaustively. Anything the backend
// sends outside {high, medium, low} lands on ConfidenceUnknown.
type Confidence int

const (
	ConfidenceUnknown Confidence = iota
	ConfidenceLow
	ConfidenceMedium
	ConfidenceHigh
)

// ParseConfidence maps the backend's confidence label onto the closed set.
func ParseConfidence(s string) Confidence {
	switch s {
	case "high":
		return ConfidenceHigh
	case "medium":
		return ConfidenceMedium
	case "low":
		return ConfidenceLow
	}
	return ConfidenceUnknown
}

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	}
	return "unknown"
}

// Source is one retrieved passage backing an answer. Sources arrive ranked
// by descending similarity; the order must be preserved as received.
type Source struct {
	Source     string  `json:"source"`
	Page       int     `json:"page"`
	ChunkType  string  `json:"chunk_type"`
	Similarity float64 `json:"similarity"`
	Text       string  `json:"text,omitempty"`
}

// TopEvidence is the number of evidence sources shown for an answer. The
// remainder is reported as a count, not rendered.
const TopEvidence = 5

// AnswerBundle is the backend's complete reply to one query. It is
// installed atomically on success and replaced wholesale by the next
// submission, never mutated field by field.
type AnswerBundle struct {
	Response      string            `json:"response"`
	Sources       []Source          `json:"sources"`
	Confidence    string            `json:"confidence"`
	RetrievedDocs []json.RawMessage `json:"retrieved_docs"`
}

// ConfidenceLevel parses the bundle's confidence label.
func (b *AnswerBundle) ConfidenceLevel() Confidence {
	return ParseConfidence(b.Confidence)
}

// TopSources returns the first min(TopEvidence, len) sources in received
// order. The slice aliases the bundle; callers must not reorder it.
func (b *AnswerBundle) TopSources() []Source {
	if len(b.Sources) <= TopEvidence {
		return b.Sources
	}
	return b.Sources[:TopEvidence]
}

// ExtraSourceCount returns how many sources fall outside the display
// window, zero when everything fits.
func (b *AnswerBundle) ExtraSourceCount() int {
	if len(b.Sources) <= TopEvidence {
		return 0
	}
	return len(b.Sources) - TopEvidence
}

// DomainInfo is one entry of the backend's domain listing.
type DomainInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IndexStatus describes one domain's index in a health report.
type IndexStatus struct {
	Loaded     bool `json:"loaded"`
	NumVectors int  `json:"num_vectors"`
}

// HealthReport is the backend's detailed health check response.
type HealthReport struct {
	Status       string                 `json:"status"`
	Indexes      map[string]IndexStatus `json:"indexes"`
	TotalDomains int                    `json:"total_domains"`
}
