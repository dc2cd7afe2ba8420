package render

import (
	"context"

	"github.com/storyforge/renderkit/provider"
)

// Provider is the interface that generation backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Generate adapts the template, executes it remotely, and returns a
	// structured outcome. Stage failures are classified into the Outcome
	// alongside the typed error; Generate never panics past the boundary.
	Generate(ctx context.Context, req Request) (*Outcome, error)
}
