package repository

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jainnhimanshuu/savorini/internal/domain"
)

func TestMemoryRuleStoreGet(t *testing.T) {
	store := NewMemoryRuleStore(domain.DefaultRules())

	rule, ok := store.Get(domain.ProvinceAB)
	require.True(t, ok)
	assert.False(t, rule.AllowPriceDisplay)

	_, ok = store.Get(domain.ProvinceQC)
	assert.False(t, ok)
}

func TestMemoryRuleStoreReplaceAll(t *testing.T) {
	store := NewMemoryRuleStore(domain.DefaultRules())
	assert.Len(t, store.ListAll(), 3)

	store.ReplaceAll([]domain.JurisdictionRule{
		{Province: domain.ProvinceQC, AllowPriceDisplay: true},
	})

	assert.Len(t, store.ListAll(), 1)
	_, ok := store.Get(domain.ProvinceON)
	assert.False(t, ok, "replacement is total, not a merge")
	_, ok = store.Get(domain.ProvinceQC)
	assert.True(t, ok)
}

func TestMemoryRuleStoreLastOccurrenceWins(t *testing.T) {
	store := NewMemoryRuleStore([]domain.JurisdictionRule{
		{Province: domain.ProvinceON, MinAge: 18},
		{Province: domain.ProvinceON, MinAge: 19},
	})

	rule, ok := store.Get(domain.ProvinceON)
	require.True(t, ok)
	assert.Equal(t, 19, rule.MinAge)
}

// Readers racing a writer must always see a complete snapshot: either
// the full old rule set or the full new one, never a mix.
func TestMemoryRuleStoreConcurrentSwap(t *testing.T) {
	store := NewMemoryRuleStore(domain.DefaultRules())

	old := len(domain.DefaultRules())
	replacement := []domain.JurisdictionRule{
		{Province: domain.ProvinceON},
		{Province: domain.ProvinceQC},
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				n := len(store.ListAll())
				assert.Contains(t, []int{old, len(replacement)}, n)
			}
		}()
	}

	for i := 0; i < 100; i++ {
		if i%2 == 0 {
			store.ReplaceAll(replacement)
		} else {
			store.ReplaceAll(domain.DefaultRules())
		}
	}
	close(stop)
	wg.Wait()
}
