package session

import (
	"fmt"

	"clinassist/client"
)

// DomainSelector holds the currently chosen clinical domain filter. It is
// a pure value holder: setting it triggers nothing, and both lanes read it
// at the moment they issue a request.
type DomainSelector struct {
	current client.Domain
}

// NewDomainSelector starts at the given domain (normally DomainAll).
func NewDomainSelector(d client.Domain) *DomainSelector {
	if !d.Valid() {
		panic(fmt.Sprintf("session: unknown domain %q", d))
	}
	return &DomainSelector{current: d}
}

// Set replaces the held domain. A value outside the closed domain set is a
// programming error, not user input, and panics.
func (s *DomainSelector) Set(d client.Domain) {
	if !d.Valid() {
		panic(fmt.Sprintf("session: unknown domain %q", d))
	}
	s.current = d
}

// Current returns the held domain filter.
func (s *DomainSelector) Current() client.Domain {
	return s.current
}
