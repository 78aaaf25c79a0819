package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/quochao170402/cekspek/internal/domain"
	"github.com/quochao170402/cekspek/internal/search"
	"github.com/quochao170402/cekspek/service"
)

type DynamoPhoneRepository struct {
	*dynamoRepository[domain.Phone, *domain.Phone]
	brands  *dynamoRepository[domain.Brand, *domain.Brand]
	reviews *dynamoRepository[domain.Review, *domain.Review]
}

func NewDynamoPhoneRepository(client service.Client, prefix string, logger *zap.Logger) *DynamoPhoneRepository {
	return &DynamoPhoneRepository{
		dynamoRepository: newDynamoRepository[domain.Phone, *domain.Phone](client, prefix, logger),
		brands:           newDynamoRepository[domain.Brand, *domain.Brand](client, prefix, logger),
		reviews:          newDynamoRepository[domain.Review, *domain.Review](client, prefix, logger),
	}
}

// withBrands attaches each phone's brand, the way Preload("Brand") does.
func (r *DynamoPhoneRepository) withBrands(ctx context.Context, phones []domain.Phone) ([]domain.Phone, error) {
	if len(phones) == 0 {
		return phones, nil
	}
	brands, err := r.brands.scan(ctx, nil)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*domain.Brand, len(brands))
	for i := range brands {
		byID[brands[i].ID] = &brands[i]
	}
	for i := range phones {
		phones[i].Brand = byID[phones[i].BrandID]
	}
	return phones, nil
}

func (r *DynamoPhoneRepository) List(ctx context.Context, filter PhoneFilter) ([]domain.Phone, error) {
	var cond *expression.ConditionBuilder
	and := func(c expression.ConditionBuilder) {
		if cond == nil {
			cond = &c
			return
		}
		joined := cond.And(c)
		cond = &joined
	}
	if filter.BrandID != nil {
		and(expression.Name("brand_id").Equal(expression.Value(*filter.BrandID)))
	}
	if filter.Featured != nil {
		and(expression.Name("is_featured").Equal(expression.Value(*filter.Featured)))
	}

	phones, err := r.scan(ctx, cond)
	if err != nil {
		return nil, err
	}
	switch filter.Sort {
	case SortNewest:
		sort.SliceStable(phones, func(i, j int) bool { return phones[i].CreatedAt.After(phones[j].CreatedAt) })
	default:
		search.SortByName(phones)
	}
	if filter.Limit > 0 && len(phones) > filter.Limit {
		phones = phones[:filter.Limit]
	}
	return r.withBrands(ctx, phones)
}

func (r *DynamoPhoneRepository) one(ctx context.Context, phone *domain.Phone) (*domain.Phone, error) {
	if phone == nil {
		return nil, nil
	}
	phones, err := r.withBrands(ctx, []domain.Phone{*phone})
	if err != nil {
		return nil, err
	}
	return &phones[0], nil
}

func (r *DynamoPhoneRepository) GetByID(ctx context.Context, id int64) (*domain.Phone, error) {
	phone, err := r.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.one(ctx, phone)
}

func (r *DynamoPhoneRepository) GetBySlug(ctx context.Context, slug string) (*domain.Phone, error) {
	filter := expression.Name("slug").Equal(expression.Value(slug))
	phones, err := r.scan(ctx, &filter)
	if err != nil || len(phones) == 0 {
		return nil, err
	}
	return r.one(ctx, &phones[0])
}

// Search scans the table and matches in memory: DynamoDB's contains() is
// case sensitive.
func (r *DynamoPhoneRepository) Search(ctx context.Context, query string, limit int) ([]domain.Phone, error) {
	phones, err := r.scan(ctx, nil)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.Phone, 0, len(phones))
	for _, p := range phones {
		if search.Matches(p, query) {
			matched = append(matched, p)
		}
	}
	search.SortByName(matched)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return r.withBrands(ctx, matched)
}

func (r *DynamoPhoneRepository) CountByBrand(ctx context.Context, brandID int64) (int64, error) {
	filter := expression.Name("brand_id").Equal(expression.Value(brandID))
	return r.count(ctx, &filter)
}

func (r *DynamoPhoneRepository) checkUnique(ctx context.Context, p *domain.Phone) error {
	dup, err := r.exists(ctx, expression.Name("slug").Equal(expression.Value(p.Slug)), p.ID)
	if err != nil {
		return err
	}
	if dup {
		return storeErr("save phone", fmt.Errorf("%w: phone slug %q", ErrDuplicate, p.Slug))
	}
	return nil
}

func (r *DynamoPhoneRepository) Create(ctx context.Context, p *domain.Phone) error {
	if err := r.checkUnique(ctx, p); err != nil {
		return err
	}
	return r.create(ctx, p)
}

func (r *DynamoPhoneRepository) Update(ctx context.Context, p *domain.Phone) error {
	if err := r.checkUnique(ctx, p); err != nil {
		return err
	}
	return r.update(ctx, p)
}

// Delete removes the phone's reviews first. The two steps are not atomic.
func (r *DynamoPhoneRepository) Delete(ctx context.Context, id int64) error {
	filter := expression.Name("phone_id").Equal(expression.Value(id))
	projection := expression.NamesList(expression.Name("id"))
	reviews, err := r.reviews.service.Scan(ctx, service.ScanRequest{FilterBuilder: &filter, ProjectionBuilder: &projection})
	if err != nil {
		return storeErr("delete phone", err)
	}
	keys := make([]map[string]types.AttributeValue, 0, len(reviews))
	for _, rv := range reviews {
		keys = append(keys, service.CreateNumberKey(rv.ID))
	}
	if err := r.reviews.service.DeleteBatch(ctx, keys); err != nil {
		return storeErr("delete phone", err)
	}
	return r.deleteByID(ctx, id)
}
