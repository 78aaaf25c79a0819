package catalog

import (
	"context"

	"github.com/quochao170402/cekspek/internal/search"
)

// Search returns at most search.ResultLimit summaries. Queries shorter than
// search.MinQueryLength return nothing without reaching the store.
func (s *Service) Search(ctx context.Context, query string) ([]search.Summary, error) {
	q, ok := search.Normalize(query)
	if !ok {
		return []search.Summary{}, nil
	}
	candidates, err := s.phones.Search(ctx, q, search.ResultLimit)
	if err != nil {
		return nil, err
	}
	matched := search.Filter(q, candidates)
	if len(matched) > search.ResultLimit {
		matched = matched[:search.ResultLimit]
	}
	out := make([]search.Summary, 0, len(matched))
	for _, p := range matched {
		out = append(out, search.Summarize(p))
	}
	return out, nil
}
