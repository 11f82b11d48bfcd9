package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jainnhimanshuu/savorini/internal/clock"
	"github.com/jainnhimanshuu/savorini/internal/domain"
	"github.com/jainnhimanshuu/savorini/internal/dto"
	"github.com/jainnhimanshuu/savorini/internal/repository"
)

// MockRuleSource is an in-memory RuleSource
type MockRuleSource struct {
	stored  []domain.JurisdictionRule
	loadErr error
	saveErr error
}

func (m *MockRuleSource) LoadAll(ctx context.Context) ([]domain.JurisdictionRule, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.stored, nil
}

func (m *MockRuleSource) SaveAll(ctx context.Context, rules []domain.JurisdictionRule) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.stored = rules
	return nil
}

func TestRuleServiceLoadSeedsDefaults(t *testing.T) {
	store := repository.NewMemoryRuleStore(nil)
	source := &MockRuleSource{}
	svc := NewRuleService(store, source, clock.NewFixed(testNow))

	require.NoError(t, svc.Load(context.Background()))

	assert.Len(t, store.ListAll(), len(domain.DefaultRules()))
	assert.Len(t, source.stored, len(domain.DefaultRules()), "empty storage is seeded")
}

func TestRuleServiceLoadPrefersStored(t *testing.T) {
	store := repository.NewMemoryRuleStore(nil)
	source := &MockRuleSource{stored: []domain.JurisdictionRule{
		{Province: domain.ProvinceQC, AllowPriceDisplay: true},
	}}
	svc := NewRuleService(store, source, clock.NewFixed(testNow))

	require.NoError(t, svc.Load(context.Background()))

	assert.Len(t, store.ListAll(), 1)
	_, ok := store.Get(domain.ProvinceQC)
	assert.True(t, ok)
}

func TestRuleServiceReplaceRules(t *testing.T) {
	store := repository.NewMemoryRuleStore(domain.DefaultRules())
	source := &MockRuleSource{}
	svc := NewRuleService(store, source, clock.NewFixed(testNow))

	out, err := svc.ReplaceRules(context.Background(), &dto.ReplaceRulesRequest{
		Rules: []dto.RuleRequest{
			{Province: "qc", AllowPriceDisplay: true, MinAge: 18},
		},
	})
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, "QC", out[0].Province)
	assert.Len(t, source.stored, 1, "replacement is persisted")

	_, ok := store.Get(domain.ProvinceON)
	assert.False(t, ok, "swap is total")
}

func TestRuleServiceReplaceRulesValidation(t *testing.T) {
	store := repository.NewMemoryRuleStore(domain.DefaultRules())
	svc := NewRuleService(store, nil, clock.NewFixed(testNow))

	_, err := svc.ReplaceRules(context.Background(), &dto.ReplaceRulesRequest{})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	_, err = svc.ReplaceRules(context.Background(), &dto.ReplaceRulesRequest{
		Rules: []dto.RuleRequest{{Province: "ZZ"}},
	})
	require.Error(t, err)

	_, err = svc.ReplaceRules(context.Background(), &dto.ReplaceRulesRequest{
		Rules: []dto.RuleRequest{
			{Province: "ON"},
			{Province: "ON"},
		},
	})
	require.Error(t, err)
	assert.Equal(t, "DUPLICATE_PROVINCE", domain.CodeOf(err))

	// A rejected replacement leaves the snapshot untouched.
	assert.Len(t, store.ListAll(), len(domain.DefaultRules()))
}
