package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/quochao170402/cekspek/internal/domain"
)

type GormPhoneRepository struct {
	*BaseRepository[domain.Phone]
	db *gorm.DB
}

func NewGormPhoneRepository(db *gorm.DB) *GormPhoneRepository {
	return &GormPhoneRepository{
		BaseRepository: NewBaseRepository[domain.Phone](db),
		db:             db,
	}
}

func (r *GormPhoneRepository) List(ctx context.Context, filter PhoneFilter) ([]domain.Phone, error) {
	var phones []domain.Phone
	q := r.db.WithContext(ctx).Preload("Brand")
	if filter.BrandID != nil {
		q = q.Where("brand_id = ?", *filter.BrandID)
	}
	if filter.Featured != nil {
		q = q.Where("is_featured = ?", *filter.Featured)
	}
	switch filter.Sort {
	case SortNewest:
		q = q.Order("created_at DESC")
	default:
		q = q.Order("name")
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Find(&phones).Error; err != nil {
		return nil, storeErr("list phones", err)
	}
	return phones, nil
}

func (r *GormPhoneRepository) first(ctx context.Context, op string, query string, args ...any) (*domain.Phone, error) {
	var phone domain.Phone
	err := r.db.WithContext(ctx).Preload("Brand").Where(query, args...).First(&phone).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr(op, err)
	}
	return &phone, nil
}

func (r *GormPhoneRepository) GetByID(ctx context.Context, id int64) (*domain.Phone, error) {
	return r.first(ctx, "get phone", "id = ?", id)
}

func (r *GormPhoneRepository) GetBySlug(ctx context.Context, slug string) (*domain.Phone, error) {
	return r.first(ctx, "get phone", "slug = ?", slug)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search matches name or chipset with ILIKE, ordered by name.
func (r *GormPhoneRepository) Search(ctx context.Context, query string, limit int) ([]domain.Phone, error) {
	var phones []domain.Phone
	pattern := "%" + likeEscaper.Replace(query) + "%"
	q := r.db.WithContext(ctx).
		Preload("Brand").
		Where("name ILIKE ? OR chipset ILIKE ?", pattern, pattern).
		Order("name")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&phones).Error; err != nil {
		return nil, storeErr("search phones", err)
	}
	return phones, nil
}

func (r *GormPhoneRepository) CountByBrand(ctx context.Context, brandID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Phone{}).Where("brand_id = ?", brandID).Count(&n).Error
	if err != nil {
		return 0, storeErr("count phones", err)
	}
	return n, nil
}

// Delete removes the reviews and the phone in one transaction, so it holds
// even on schemas created without the cascading foreign key.
func (r *GormPhoneRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("phone_id = ?", id).Delete(&domain.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Phone{}, "id = ?", id).Error
	})
	if err != nil {
		return storeErr("delete phone", err)
	}
	return nil
}
