package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/quochao170402/cekspek/internal/domain"
)

type GormBrandRepository struct {
	*BaseRepository[domain.Brand]
	db *gorm.DB
}

func NewGormBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{
		BaseRepository: NewBaseRepository[domain.Brand](db),
		db:             db,
	}
}

func (r *GormBrandRepository) List(ctx context.Context) ([]domain.Brand, error) {
	var brands []domain.Brand
	if err := r.db.WithContext(ctx).Order("name").Find(&brands).Error; err != nil {
		return nil, storeErr("list brands", err)
	}
	return brands, nil
}

func (r *GormBrandRepository) ListWithCounts(ctx context.Context) ([]domain.BrandWithCount, error) {
	var brands []domain.BrandWithCount
	err := r.db.WithContext(ctx).
		Model(&domain.Brand{}).
		Select("brands.*, COUNT(phones.id) AS phone_count").
		Joins("LEFT JOIN phones ON phones.brand_id = brands.id").
		Group("brands.id").
		Order("brands.name").
		Scan(&brands).Error
	if err != nil {
		return nil, storeErr("list brands", err)
	}
	return brands, nil
}
