package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/quochao170402/cekspek/internal/domain"
)

type GormReviewRepository struct {
	*BaseRepository[domain.Review]
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{
		BaseRepository: NewBaseRepository[domain.Review](db),
		db:             db,
	}
}

func (r *GormReviewRepository) ListByPhone(ctx context.Context, phoneID int64) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.WithContext(ctx).
		Where("phone_id = ?", phoneID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, storeErr("list reviews", err)
	}
	return reviews, nil
}

func (r *GormReviewRepository) ListByPhones(ctx context.Context, phoneIDs []int64) ([]domain.Review, error) {
	if len(phoneIDs) == 0 {
		return nil, nil
	}
	var reviews []domain.Review
	err := r.db.WithContext(ctx).
		Select("id", "phone_id", "rating").
		Where("phone_id IN ?", phoneIDs).
		Find(&reviews).Error
	if err != nil {
		return nil, storeErr("list reviews", err)
	}
	return reviews, nil
}

func (r *GormReviewRepository) List(ctx context.Context, filter ReviewFilter) ([]domain.ReviewWithPhone, error) {
	var reviews []domain.ReviewWithPhone
	q := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Select("reviews.*, phones.name AS phone_name, phones.slug AS phone_slug").
		Joins("LEFT JOIN phones ON phones.id = reviews.phone_id").
		Order("reviews.created_at DESC")
	if filter.Rating != nil {
		q = q.Where("reviews.rating = ?", *filter.Rating)
	}
	if err := q.Scan(&reviews).Error; err != nil {
		return nil, storeErr("list reviews", err)
	}
	return reviews, nil
}
