package mcp

import (
	"errors"

	"github.com/haldane-labs/tuberag/internal/core/ports/driving"
)

// ErrMissingQueryService is returned by NewServer when no query service was
// injected.
var ErrMissingQueryService = errors.New("mcp: query service is required")

// Ports carries the application services the MCP server is built on. Query
// backs the tools and is mandatory. System only backs the informational
// resources and may be left nil, in which case those degrade gracefully.
type Ports struct {
	Query  driving.QueryService
	System driving.SystemService
}

// Validate checks that the mandatory services are present.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
