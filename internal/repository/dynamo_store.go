package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/quochao170402/cekspek/service"
)

const DriverDynamoDB = "dynamodb"

// NewDynamoStore wires the DynamoDB repositories. Table names are prefix
// followed by the entity table name.
func NewDynamoStore(client service.Client, prefix string, logger *zap.Logger) *Store {
	brands := NewDynamoBrandRepository(client, prefix, logger)
	phones := NewDynamoPhoneRepository(client, prefix, logger)
	reviews := NewDynamoReviewRepository(client, prefix, logger)

	migrate := func(ctx context.Context) error {
		if err := brands.ensureTables(ctx); err != nil {
			return err
		}
		if err := phones.ensureTables(ctx); err != nil {
			return err
		}
		return reviews.ensureTables(ctx)
	}
	return NewStore(DriverDynamoDB, brands, phones, reviews, migrate, nil)
}

var (
	_ BrandRepository  = (*DynamoBrandRepository)(nil)
	_ PhoneRepository  = (*DynamoPhoneRepository)(nil)
	_ ReviewRepository = (*DynamoReviewRepository)(nil)
)
