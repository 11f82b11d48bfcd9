package repository

import (
	"sync/atomic"

	"github.com/jainnhimanshuu/savorini/internal/domain"
)

// MemoryRuleStore holds the jurisdiction rule table as an atomically
// swappable immutable snapshot. Discovery reads go through Load on the
// hot path and never block on an administrative replacement; an
// in-flight request always sees an internally consistent rule set.
type MemoryRuleStore struct {
	snapshot atomic.Pointer[map[domain.Province]domain.JurisdictionRule]
}

// NewMemoryRuleStore builds a store seeded with the given rules.
func NewMemoryRuleStore(rules []domain.JurisdictionRule) *MemoryRuleStore {
	s := &MemoryRuleStore{}
	s.ReplaceAll(rules)
	return s
}

// Get returns the rule for a province, reporting false when the
// province has no configured rule set.
func (s *MemoryRuleStore) Get(province domain.Province) (domain.JurisdictionRule, bool) {
	snap := *s.snapshot.Load()
	rule, ok := snap[province]
	return rule, ok
}

// ListAll returns all configured rules.
func (s *MemoryRuleStore) ListAll() []domain.JurisdictionRule {
	snap := *s.snapshot.Load()
	rules := make([]domain.JurisdictionRule, 0, len(snap))
	for _, r := range snap {
		rules = append(rules, r)
	}
	return rules
}

// ReplaceAll atomically swaps in a fresh snapshot built from rules.
// Entries sharing a province keep the last occurrence.
func (s *MemoryRuleStore) ReplaceAll(rules []domain.JurisdictionRule) {
	snap := make(map[domain.Province]domain.JurisdictionRule, len(rules))
	for _, r := range rules {
		snap[r.Province] = r
	}
	s.snapshot.Store(&snap)
}
