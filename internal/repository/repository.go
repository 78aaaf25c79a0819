package repository

import (
	"context"
	"errors"

	"github.com/quochao170402/cekspek/internal/domain"
)

// ErrDuplicate is returned by drivers that enforce uniqueness themselves.
var ErrDuplicate = errors.New("duplicate key value violates unique constraint")

type PhoneSort int

const (
	SortByName PhoneSort = iota
	SortNewest
)

type PhoneFilter struct {
	BrandID  *int64
	Featured *bool
	Sort     PhoneSort
	Limit    int
}

type ReviewFilter struct {
	Rating *int
}

// Lookups return (nil, nil) when the record does not exist.
type BrandRepository interface {
	List(ctx context.Context) ([]domain.Brand, error)
	ListWithCounts(ctx context.Context) ([]domain.BrandWithCount, error)
	GetByID(ctx context.Context, id int64) (*domain.Brand, error)
	Create(ctx context.Context, brand *domain.Brand) error
	Update(ctx context.Context, brand *domain.Brand) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// Phones are returned with their brand loaded.
type PhoneRepository interface {
	List(ctx context.Context, filter PhoneFilter) ([]domain.Phone, error)
	GetByID(ctx context.Context, id int64) (*domain.Phone, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Phone, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Phone, error)
	CountByBrand(ctx context.Context, brandID int64) (int64, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, phone *domain.Phone) error
	Update(ctx context.Context, phone *domain.Phone) error
	// Delete removes the phone together with its reviews.
	Delete(ctx context.Context, id int64) error
}

type ReviewRepository interface {
	ListByPhone(ctx context.Context, phoneID int64) ([]domain.Review, error)
	ListByPhones(ctx context.Context, phoneIDs []int64) ([]domain.Review, error)
	List(ctx context.Context, filter ReviewFilter) ([]domain.ReviewWithPhone, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	Create(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// Store bundles the repositories of one driver.
type Store struct {
	Driver  string
	Brands  BrandRepository
	Phones  PhoneRepository
	Reviews ReviewRepository

	migrate func(ctx context.Context) error
	close   func() error
}

func NewStore(driver string, brands BrandRepository, phones PhoneRepository, reviews ReviewRepository,
	migrate func(context.Context) error, closeFn func() error) *Store {
	return &Store{
		Driver:  driver,
		Brands:  brands,
		Phones:  phones,
		Reviews: reviews,
		migrate: migrate,
		close:   closeFn,
	}
}

// Migrate creates or updates the schema.
func (s *Store) Migrate(ctx context.Context) error {
	if s.migrate == nil {
		return nil
	}
	return s.migrate(ctx)
}

func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

func storeErr(op string, err error) error {
	return domain.NewStoreError(op, err)
}
