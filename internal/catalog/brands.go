package catalog

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/quochao170402/cekspek/internal/domain"
)

func (s *Service) ListBrands(ctx context.Context) ([]domain.BrandWithCount, error) {
	brands, err := s.brands.ListWithCounts(ctx)
	if err != nil {
		return nil, err
	}
	if brands == nil {
		brands = []domain.BrandWithCount{}
	}
	return brands, nil
}

func (s *Service) GetBrand(ctx context.Context, id int64) (*domain.Brand, error) {
	brand, err := s.brands.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, &domain.NotFoundError{Entity: "Brand", Key: strconv.FormatInt(id, 10)}
	}
	return brand, nil
}

func (s *Service) CreateBrand(ctx context.Context, in domain.BrandInput) (*domain.Brand, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var brand domain.Brand
	in.Apply(&brand)
	if err := s.brands.Create(ctx, &brand); err != nil {
		return nil, err
	}
	s.logger.Info("brand created", zap.Int64("id", brand.ID), zap.String("slug", brand.Slug))
	return &brand, nil
}

func (s *Service) UpdateBrand(ctx context.Context, id int64, in domain.BrandInput) (*domain.Brand, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	brand, err := s.GetBrand(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Apply(brand)
	if err := s.brands.Update(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// DeleteBrand refuses while phones still reference the brand. The count and
// the delete are separate store calls, so a phone created in between is not
// detected here; the foreign key still rejects the delete on postgres.
func (s *Service) DeleteBrand(ctx context.Context, id int64) error {
	brand, err := s.GetBrand(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.phones.CountByBrand(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &domain.ReferentialIntegrityError{Brand: brand.Name, PhoneCount: n}
	}
	if err := s.brands.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("brand deleted", zap.Int64("id", id))
	return nil
}
