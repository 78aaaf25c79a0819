package search

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quochao170402/cekspek/internal/domain"
)

func phone(id int64, name, chipset string) domain.Phone {
	p := domain.Phone{ID: id, Name: name}
	if chipset != "" {
		p.Chipset = &chipset
	}
	return p
}

func names(phones []domain.Phone) []string {
	out := make([]string, 0, len(phones))
	for _, p := range phones {
		out = append(out, p.Name)
	}
	return out
}

func TestFilter(t *testing.T) {
	all := []domain.Phone{
		phone(1, "Xiaomi 14", "Snapdragon 8 Gen 3"),
		phone(2, "Galaxy S24", "Exynos 2400"),
		phone(3, "POCO F6", "Snapdragon 8s Gen 3"),
		phone(4, "iPhone 15", ""),
		phone(5, "Galaxy A55", "Exynos 1480"),
	}

	assert.Equal(t, []string{"POCO F6", "Xiaomi 14"}, names(Filter("snapdragon", all)))
	assert.Equal(t, []string{"Galaxy A55", "Galaxy S24"}, names(Filter("  GALAXY ", all)))
	assert.Equal(t, []string{"iPhone 15"}, names(Filter("phone", all)))
	assert.Empty(t, Filter("pixel", all))
}

func TestFilterShortQuery(t *testing.T) {
	all := []domain.Phone{phone(1, "X", "")}
	assert.Nil(t, Filter("x", all))
	assert.Nil(t, Filter("   x  ", all))
	assert.Nil(t, Filter("", all))
}

func TestSortByNameIgnoresCase(t *testing.T) {
	all := []domain.Phone{phone(1, "vivo X100", ""), phone(2, "Asus ROG", ""), phone(3, "iPhone 15", "")}
	SortByName(all)
	assert.Equal(t, []string{"Asus ROG", "iPhone 15", "vivo X100"}, names(all))
}

func TestSummarize(t *testing.T) {
	p := phone(7, "Redmi 13", "Helio G91")
	p.Slug = "redmi-13"
	p.Brand = &domain.Brand{Name: "Xiaomi"}
	p.BatteryCapacity = domain.Ptr(5030)

	s := Summarize(p)
	assert.Equal(t, "Xiaomi", s.BrandName)
	assert.Equal(t, "Helio G91", *s.Chipset)
	assert.Equal(t, 5030, *s.BatteryCapacity)
}

func TestSequencerLastQueryWins(t *testing.T) {
	var seq Sequencer
	first := seq.Next()
	second := seq.Next()

	// the older response arrives last and must be dropped
	assert.True(t, seq.IsLatest(second))
	assert.False(t, seq.IsLatest(first))
}

func TestSequencerConcurrent(t *testing.T) {
	var seq Sequencer
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq.Next()
		}()
	}
	wg.Wait()
	assert.True(t, seq.IsLatest(50))
}
