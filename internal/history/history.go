// Package history retrieves and organizes completed test attempts.
package history

import (
	"context"
	"fmt"

	"github.com/minhvu/quizdeck/internal/api"
	"github.com/minhvu/quizdeck/internal/identity"
)

// Fetcher is the slice of the API client the aggregator needs.
type Fetcher interface {
	TestHistory(ctx context.Context, token string) ([]api.HistoryRecord, error)
}

// Aggregator fetches the identity's completed attempts from the server.
type Aggregator struct {
	client Fetcher
	gate   identity.Gate
}

// NewAggregator creates an Aggregator using the given client and gate.
func NewAggregator(client Fetcher, gate identity.Gate) *Aggregator {
	return &Aggregator{client: client, gate: gate}
}

// Fetch returns all completed attempts of the current identity. Without a
// usable credential it returns identity.ErrLoginRequired so the caller can
// show a "sign in to view history" state.
func (a *Aggregator) Fetch(ctx context.Context) ([]api.HistoryRecord, error) {
	token, ok := a.gate.Credential()
	if !ok {
		return nil, identity.ErrLoginRequired
	}
	records, err := a.client.TestHistory(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("fetch test history: %w", err)
	}
	return records, nil
}

// Group is the attempts sharing one set name, in original record order.
type Group struct {
	SetName string
	Records []api.HistoryRecord
}

// GroupBySetName partitions records by set name. Group order follows the
// first occurrence of each name; records keep their relative order within a
// group. Pure function, no I/O.
func GroupBySetName(records []api.HistoryRecord) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, r := range records {
		i, seen := index[r.SetName]
		if !seen {
			i = len(groups)
			index[r.SetName] = i
			groups = append(groups, Group{SetName: r.SetName})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// Expansion tracks the expanded/collapsed detail flag per attempt.
// Every record starts collapsed; toggling one never affects another.
type Expansion struct {
	open map[string]bool
}

// NewExpansion creates an all-collapsed expansion state.
func NewExpansion() *Expansion {
	return &Expansion{open: make(map[string]bool)}
}

// Toggle flips the expanded flag for one attempt.
func (e *Expansion) Toggle(testID string) {
	e.open[testID] = !e.open[testID]
}

// Expanded reports whether an attempt's detail is shown.
func (e *Expansion) Expanded(testID string) bool {
	return e.open[testID]
}
