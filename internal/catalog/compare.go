package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/quochao170402/cekspek/internal/compare"
	"github.com/quochao170402/cekspek/internal/domain"
	"github.com/quochao170402/cekspek/internal/rating"
)

func checkCount(n int) error {
	if n < compare.MinPhones || n > compare.MaxPhones {
		return &domain.ValidationError{
			Field:   "ids",
			Message: fmt.Sprintf("Pilih %d sampai %d HP untuk dibandingkan", compare.MinPhones, compare.MaxPhones),
		}
	}
	return nil
}

// Compare loads the phones concurrently and lays them out in the given order.
func (s *Service) Compare(ctx context.Context, ids []int64) (*compare.Table, error) {
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, &domain.ValidationError{Field: "ids", Message: "HP yang dibandingkan tidak boleh sama"}
		}
		seen[id] = true
	}
	if err := checkCount(len(ids)); err != nil {
		return nil, err
	}
	return s.compareWith(ctx, len(ids), func(ctx context.Context, i int) (*domain.Phone, error) {
		return s.GetPhone(ctx, ids[i])
	})
}

// CompareBySlugs is Compare keyed by slug.
func (s *Service) CompareBySlugs(ctx context.Context, slugs []string) (*compare.Table, error) {
	seen := make(map[string]bool, len(slugs))
	for _, slug := range slugs {
		if seen[slug] {
			return nil, &domain.ValidationError{Field: "slugs", Message: "HP yang dibandingkan tidak boleh sama"}
		}
		seen[slug] = true
	}
	if err := checkCount(len(slugs)); err != nil {
		return nil, err
	}
	return s.compareWith(ctx, len(slugs), func(ctx context.Context, i int) (*domain.Phone, error) {
		return s.GetPhoneBySlug(ctx, slugs[i])
	})
}

func (s *Service) compareWith(ctx context.Context, n int, load func(ctx context.Context, i int) (*domain.Phone, error)) (*compare.Table, error) {
	phones := make([]domain.Phone, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(compare.MaxPhones)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			p, err := load(gctx, i)
			if err != nil {
				return err
			}
			phones[i] = *p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ids := make([]int64, n)
	for i, p := range phones {
		ids[i] = p.ID
	}
	reviews, err := s.reviews.ListByPhones(ctx, ids)
	if err != nil {
		return nil, err
	}

	table, err := compare.Compare(phones, rating.AveragesByPhone(reviews))
	if err != nil {
		return nil, err
	}
	return &table, nil
}
