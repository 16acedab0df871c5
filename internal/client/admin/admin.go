// Package admin implements the operator flows: the component
// configuration panel and the read-only user table.
package admin

import (
	"context"
	"fmt"

	"github.com/nstepanova/onboard/internal/client/api"
	"github.com/nstepanova/onboard/internal/models"
)

// API is the subset of the onboarding API the admin panel needs.
type API interface {
	// Config fetches all component configuration entries.
	Config(ctx context.Context) ([]models.ComponentConfig, error)
	// SaveConfig submits the full entry list for batch upsert.
	SaveConfig(ctx context.Context, entries []models.ComponentConfig) (*api.BatchResponse, error)
}

// Panel holds the operator's uncommitted view of the component
// configuration. Page changes stay local until Save submits the entire
// list; no diffing against the loaded state is attempted.
type Panel struct {
	api     API
	entries []models.ComponentConfig
}

// NewPanel constructs a Panel over the given API.
func NewPanel(a API) *Panel {
	return &Panel{api: a}
}

// Load fetches the full configuration, replacing any local edits.
func (p *Panel) Load(ctx context.Context) error {
	entries, err := p.api.Config(ctx)
	if err != nil {
		return err
	}
	p.entries = entries
	return nil
}

// Entries returns a copy of the current in-memory list.
func (p *Panel) Entries() []models.ComponentConfig {
	out := make([]models.ComponentConfig, len(p.entries))
	copy(out, p.entries)
	return out
}

// SetPage reassigns the page of a loaded entry locally. The entry must
// exist and the page must be 2 or 3.
func (p *Panel) SetPage(name string, page int) error {
	if page != 2 && page != 3 {
		return fmt.Errorf("page must be 2 or 3")
	}
	for i := range p.entries {
		if p.entries[i].Name == name {
			p.entries[i].Page = page
			return nil
		}
	}
	return fmt.Errorf("unknown component %q", name)
}

// Save submits the entire in-memory list and returns the server's
// per-entry outcomes.
func (p *Panel) Save(ctx context.Context) (*api.BatchResponse, error) {
	return p.api.SaveConfig(ctx, p.Entries())
}
