package background

import (
	"github.com/uber-go/tally"
)

// Background is a struct to maintain common clients
// and functions for all background workers
type Background struct {
	Metrics tally.Scope
}

func newBackground(scope tally.Scope) Background {
	if scope == nil {
		scope = tally.NoopScope
	}
	return Background{Metrics: scope}
}
