// Package catalog implements every user-facing action on top of the store.
package catalog

import (
	"time"

	"go.uber.org/zap"

	"github.com/quochao170402/cekspek/internal/repository"
)

type Service struct {
	brands  repository.BrandRepository
	phones  repository.PhoneRepository
	reviews repository.ReviewRepository
	logger  *zap.Logger
	now     func() time.Time
}

type Option func(*Service)

// WithClock overrides the clock used for relative review dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store *repository.Store, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		brands:  store.Brands,
		phones:  store.Phones,
		reviews: store.Reviews,
		logger:  logger.Named("catalog"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
