package types

import (
	"github.com/tliron/glsp"
)

// RequestContext carries the server and the protocol context of one LSP
// method call, plus the non-fatal warnings the handler collected.
type RequestContext struct {
	Server   ServerContext
	GLSP     *glsp.Context
	warnings []error
}

// NewRequestContext creates a new request context
func NewRequestContext(server ServerContext, glsp *glsp.Context) *RequestContext {
	return &RequestContext{
		Server: server,
		GLSP:   glsp,
	}
}

// AddWarning records a non-fatal problem. Middleware logs warnings after
// the handler succeeds.
func (r *RequestContext) AddWarning(err error) {
	if err != nil {
		r.warnings = append(r.warnings, err)
	}
}

// Warnings returns the warnings collected so far, or nil
func (r *RequestContext) Warnings() []error {
	return r.warnings
}

// HasWarnings reports whether any warnings were collected
func (r *RequestContext) HasWarnings() bool {
	return len(r.warnings) > 0
}
