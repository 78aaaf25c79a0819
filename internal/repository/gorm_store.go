package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/quochao170402/cekspek/internal/domain"
)

const DriverPostgres = "postgres"

// NewGormStore wires the gorm repositories onto db.
func NewGormStore(db *gorm.DB) *Store {
	migrate := func(ctx context.Context) error {
		return db.WithContext(ctx).AutoMigrate(&domain.Brand{}, &domain.Phone{}, &domain.Review{})
	}
	closeFn := func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return NewStore(DriverPostgres,
		NewGormBrandRepository(db),
		NewGormPhoneRepository(db),
		NewGormReviewRepository(db),
		migrate, closeFn)
}

var (
	_ BrandRepository  = (*GormBrandRepository)(nil)
	_ PhoneRepository  = (*GormPhoneRepository)(nil)
	_ ReviewRepository = (*GormReviewRepository)(nil)
)
