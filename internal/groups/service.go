// Package groups holds the ledger group chart and the group / trial-balance
// aggregator.
package groups

import (
	"sort"
	"strings"

	"github.com/cleared-dev/ledgerview/internal/model"
)

// Service provides in-memory lookup over built-in plus custom ledger groups.
type Service struct {
	groups []model.LedgerGroup
	byID   map[int64]model.LedgerGroup
}

// NewService merges the built-in chart with custom groups. A custom group
// with a built-in ID replaces the built-in entry.
func NewService(custom []model.LedgerGroup) *Service {
	byID := make(map[int64]model.LedgerGroup)
	for _, g := range DefaultGroups() {
		byID[g.ID] = g
	}
	for _, g := range custom {
		byID[g.ID] = g
	}

	all := make([]model.LedgerGroup, 0, len(byID))
	for _, g := range byID {
		all = append(all, g)
	}
	// Built-ins first (-1, -2, ...), then custom groups ascending.
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i].ID, all[j].ID
		if (a < 0) != (b < 0) {
			return a < 0
		}
		if a < 0 {
			return a > b
		}
		return a < b
	})
	return &Service{groups: all, byID: byID}
}

// All returns all groups.
func (s *Service) All() []model.LedgerGroup {
	return s.groups
}

// Get returns a group by ID.
func (s *Service) Get(id int64) (model.LedgerGroup, bool) {
	g, ok := s.byID[id]
	return g, ok
}

// Exists reports whether a group ID exists.
func (s *Service) Exists(id int64) bool {
	_, ok := s.byID[id]
	return ok
}

// ByNature returns all groups of the given nature.
func (s *Service) ByNature(n model.Nature) []model.LedgerGroup {
	var result []model.LedgerGroup
	for _, g := range s.groups {
		if g.Nature == n {
			result = append(result, g)
		}
	}
	return result
}

// ByType returns all groups whose type tag equals tag, ignoring case.
func (s *Service) ByType(tag string) []model.LedgerGroup {
	var result []model.LedgerGroup
	for _, g := range s.groups {
		if strings.EqualFold(g.Type, tag) {
			result = append(result, g)
		}
	}
	return result
}

// FindByName returns the first group whose name matches, ignoring case.
func (s *Service) FindByName(name string) (model.LedgerGroup, bool) {
	for _, g := range s.groups {
		if strings.EqualFold(strings.TrimSpace(g.Name), strings.TrimSpace(name)) {
			return g, true
		}
	}
	return model.LedgerGroup{}, false
}
