// Package search filters phones by name or chipset.
package search

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/quochao170402/cekspek/internal/domain"
)

const (
	MinQueryLength = 2
	ResultLimit    = 20
	DebounceWindow = 300 * time.Millisecond
)

type Summary struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Slug            string  `json:"slug"`
	ImageURL        *string `json:"image_url"`
	BrandName       string  `json:"brand_name"`
	Chipset         *string `json:"chipset"`
	RAM             *string `json:"ram"`
	BatteryCapacity *int    `json:"battery_capacity"`
	PriceMin        *int64  `json:"price_min"`
}

func Summarize(p domain.Phone) Summary {
	return Summary{
		ID:              p.ID,
		Name:            p.Name,
		Slug:            p.Slug,
		ImageURL:        p.ImageURL,
		BrandName:       p.BrandName(),
		Chipset:         p.Chipset,
		RAM:             p.RAM,
		BatteryCapacity: p.BatteryCapacity,
		PriceMin:        p.PriceMin,
	}
}

// Normalize trims q. The second result is false when q is too short to search.
func Normalize(q string) (string, bool) {
	q = strings.TrimSpace(q)
	return q, len([]rune(q)) >= MinQueryLength
}

// Matches reports whether the name or the chipset contains q, ignoring case.
func Matches(p domain.Phone, q string) bool {
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	return p.Chipset != nil && strings.Contains(strings.ToLower(*p.Chipset), q)
}

var (
	collatorMu sync.Mutex
	collator   = collate.New(language.Indonesian, collate.IgnoreCase)
)

// SortByName orders phones alphabetically by name.
func SortByName(phones []domain.Phone) {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	sort.SliceStable(phones, func(i, j int) bool {
		return collator.CompareString(phones[i].Name, phones[j].Name) < 0
	})
}

// Filter returns the matching phones sorted by name. A query shorter than
// MinQueryLength yields nothing.
func Filter(query string, phones []domain.Phone) []domain.Phone {
	q, ok := Normalize(query)
	if !ok {
		return nil
	}
	out := make([]domain.Phone, 0, len(phones))
	for _, p := range phones {
		if Matches(p, q) {
			out = append(out, p)
		}
	}
	SortByName(out)
	return out
}

// Sequencer hands out increasing tickets to queries so that only the result
// of the most recent query is applied, whatever order results arrive in.
type Sequencer struct {
	last atomic.Uint64
}

// Next issues a ticket for a new query.
func (s *Sequencer) Next() uint64 {
	return s.last.Add(1)
}

// IsLatest reports whether ticket belongs to the most recently issued query.
func (s *Sequencer) IsLatest(ticket uint64) bool {
	return s.last.Load() == ticket
}
