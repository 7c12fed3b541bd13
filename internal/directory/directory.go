// Package directory presents the question sets visible to the current
// identity and lets the owner flip a set's visibility.
package directory

import (
	"context"
	"fmt"

	"github.com/minhvu/quizdeck/internal/api"
	"github.com/minhvu/quizdeck/internal/identity"
)

// Lister is the slice of the API client the directory needs.
type Lister interface {
	ListSets(ctx context.Context, token string) ([]api.QuestionSet, error)
	ToggleVisibility(ctx context.Context, token, setID string) (*api.ToggleResult, error)
}

// Directory holds the in-memory list of visible sets.
type Directory struct {
	client Lister
	gate   identity.Gate
	sets   []api.QuestionSet
}

// New creates a Directory using the given client and gate.
func New(client Lister, gate identity.Gate) *Directory {
	return &Directory{client: client, gate: gate}
}

// Sets returns the current in-memory set list.
func (d *Directory) Sets() []api.QuestionSet {
	return d.sets
}

// Refresh fetches the sets visible to the current identity. Without a
// usable credential it returns identity.ErrLoginRequired and an empty list
// so the caller shows a "sign in" state instead of failing.
func (d *Directory) Refresh(ctx context.Context) ([]api.QuestionSet, error) {
	token, ok := d.gate.Credential()
	if !ok {
		d.sets = nil
		return nil, identity.ErrLoginRequired
	}

	sets, err := d.client.ListSets(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("refresh question sets: %w", err)
	}
	d.sets = sets
	return sets, nil
}

// Toggle flips a set between public and private. On success the in-memory
// list is updated in place without a refetch; a set id no longer in the
// list (the list was refreshed meanwhile) is not an error, the flip simply
// has nothing local to apply to. Authorization failures propagate for the
// caller to force re-login.
func (d *Directory) Toggle(ctx context.Context, setID string) error {
	token, ok := d.gate.Credential()
	if !ok {
		return api.ErrUnauthenticated
	}

	if _, err := d.client.ToggleVisibility(ctx, token, setID); err != nil {
		return err
	}

	for i := range d.sets {
		if d.sets[i].ID != setID {
			continue
		}
		if d.sets[i].Visibility == api.VisibilityPublic {
			d.sets[i].Visibility = api.VisibilityPrivate
		} else {
			d.sets[i].Visibility = api.VisibilityPublic
		}
		break
	}
	return nil
}
