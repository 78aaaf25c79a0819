package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"go.uber.org/zap"

	"github.com/quochao170402/cekspek/internal/domain"
	"github.com/quochao170402/cekspek/service"
)

type DynamoBrandRepository struct {
	*dynamoRepository[domain.Brand, *domain.Brand]
	phones *dynamoRepository[domain.Phone, *domain.Phone]
}

func NewDynamoBrandRepository(client service.Client, prefix string, logger *zap.Logger) *DynamoBrandRepository {
	return &DynamoBrandRepository{
		dynamoRepository: newDynamoRepository[domain.Brand, *domain.Brand](client, prefix, logger),
		phones:           newDynamoRepository[domain.Phone, *domain.Phone](client, prefix, logger),
	}
}

func sortBrands(brands []domain.Brand) {
	sort.SliceStable(brands, func(i, j int) bool { return brands[i].Name < brands[j].Name })
}

func (r *DynamoBrandRepository) List(ctx context.Context) ([]domain.Brand, error) {
	brands, err := r.scan(ctx, nil)
	if err != nil {
		return nil, err
	}
	sortBrands(brands)
	return brands, nil
}

func (r *DynamoBrandRepository) ListWithCounts(ctx context.Context) ([]domain.BrandWithCount, error) {
	brands, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	projection := expression.NamesList(expression.Name("brand_id"))
	phones, err := r.phones.service.Scan(ctx, service.ScanRequest{ProjectionBuilder: &projection})
	if err != nil {
		return nil, storeErr("list brands", err)
	}
	counts := make(map[int64]int64, len(brands))
	for _, p := range phones {
		counts[p.BrandID]++
	}

	out := make([]domain.BrandWithCount, 0, len(brands))
	for _, b := range brands {
		out = append(out, domain.BrandWithCount{Brand: b, PhoneCount: counts[b.ID]})
	}
	return out, nil
}

func (r *DynamoBrandRepository) GetByID(ctx context.Context, id int64) (*domain.Brand, error) {
	return r.getByID(ctx, id)
}

// checkUnique stands in for the unique indexes on name and slug.
func (r *DynamoBrandRepository) checkUnique(ctx context.Context, b *domain.Brand) error {
	filter := expression.Name("name").Equal(expression.Value(b.Name)).
		Or(expression.Name("slug").Equal(expression.Value(b.Slug)))
	dup, err := r.exists(ctx, filter, b.ID)
	if err != nil {
		return err
	}
	if dup {
		return storeErr("save brand", fmt.Errorf("%w: brand %q", ErrDuplicate, b.Name))
	}
	return nil
}

func (r *DynamoBrandRepository) Create(ctx context.Context, b *domain.Brand) error {
	if err := r.checkUnique(ctx, b); err != nil {
		return err
	}
	return r.create(ctx, b)
}

func (r *DynamoBrandRepository) Update(ctx context.Context, b *domain.Brand) error {
	if err := r.checkUnique(ctx, b); err != nil {
		return err
	}
	return r.update(ctx, b)
}

func (r *DynamoBrandRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, id)
}
