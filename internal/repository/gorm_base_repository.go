package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quochao170402/cekspek/internal/domain"
)

type IBaseRepository[T domain.Table] interface {
	GetMany(ctx context.Context, filter map[string]any) ([]T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type BaseRepository[T domain.Table] struct {
	db *gorm.DB
}

func NewBaseRepository[T domain.Table](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db}
}

func (r *BaseRepository[T]) name() string {
	var zero T
	return zero.TableName()
}

func (r *BaseRepository[T]) GetMany(ctx context.Context, filter map[string]any) ([]T, error) {
	var entities []T
	result := r.db.WithContext(ctx).Where(filter).Find(&entities)
	if result.Error != nil {
		return nil, storeErr("list "+r.name(), result.Error)
	}
	return entities, nil
}

func (r *BaseRepository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	var entity T
	result := r.db.WithContext(ctx).First(&entity, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr("get "+r.name(), result.Error)
	}
	return &entity, nil
}

func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	result := r.db.WithContext(ctx).Omit(clause.Associations).Create(entity)
	if result.Error != nil {
		return storeErr("create "+r.name(), result.Error)
	}
	return nil
}

func (r *BaseRepository[T]) Update(ctx context.Context, entity *T) error {
	result := r.db.WithContext(ctx).Omit(clause.Associations).Save(entity)
	if result.Error != nil {
		return storeErr("update "+r.name(), result.Error)
	}
	return nil
}

func (r *BaseRepository[T]) Delete(ctx context.Context, id int64) error {
	var entity T
	result := r.db.WithContext(ctx).Delete(&entity, "id = ?", id)
	if result.Error != nil {
		return storeErr("delete "+r.name(), result.Error)
	}
	return nil
}

func (r *BaseRepository[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	var entity T
	if err := r.db.WithContext(ctx).Model(&entity).Count(&n).Error; err != nil {
		return 0, storeErr("count "+r.name(), err)
	}
	return n, nil
}
