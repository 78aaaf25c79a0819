package repository

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"go.uber.org/zap"

	"github.com/quochao170402/cekspek/internal/domain"
	"github.com/quochao170402/cekspek/service"
)

type DynamoReviewRepository struct {
	*dynamoRepository[domain.Review, *domain.Review]
	phones *dynamoRepository[domain.Phone, *domain.Phone]
}

func NewDynamoReviewRepository(client service.Client, prefix string, logger *zap.Logger) *DynamoReviewRepository {
	return &DynamoReviewRepository{
		dynamoRepository: newDynamoRepository[domain.Review, *domain.Review](client, prefix, logger),
		phones:           newDynamoRepository[domain.Phone, *domain.Phone](client, prefix, logger),
	}
}

func newestFirst(reviews []domain.Review) {
	sort.SliceStable(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })
}

func (r *DynamoReviewRepository) ListByPhone(ctx context.Context, phoneID int64) ([]domain.Review, error) {
	filter := expression.Name("phone_id").Equal(expression.Value(phoneID))
	reviews, err := r.scan(ctx, &filter)
	if err != nil {
		return nil, err
	}
	newestFirst(reviews)
	return reviews, nil
}

func (r *DynamoReviewRepository) ListByPhones(ctx context.Context, phoneIDs []int64) ([]domain.Review, error) {
	if len(phoneIDs) == 0 {
		return nil, nil
	}
	values := make([]expression.OperandBuilder, 0, len(phoneIDs))
	for _, id := range phoneIDs {
		values = append(values, expression.Value(id))
	}
	filter := expression.Name("phone_id").In(values[0], values[1:]...)
	return r.scan(ctx, &filter)
}

func (r *DynamoReviewRepository) List(ctx context.Context, filter ReviewFilter) ([]domain.ReviewWithPhone, error) {
	var cond *expression.ConditionBuilder
	if filter.Rating != nil {
		c := expression.Name("rating").Equal(expression.Value(*filter.Rating))
		cond = &c
	}
	reviews, err := r.scan(ctx, cond)
	if err != nil {
		return nil, err
	}
	newestFirst(reviews)

	phones, err := r.phones.scan(ctx, nil)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]domain.Phone, len(phones))
	for _, p := range phones {
		byID[p.ID] = p
	}

	out := make([]domain.ReviewWithPhone, 0, len(reviews))
	for _, rv := range reviews {
		p := byID[rv.PhoneID]
		out = append(out, domain.ReviewWithPhone{Review: rv, PhoneName: p.Name, PhoneSlug: p.Slug})
	}
	return out, nil
}

func (r *DynamoReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	return r.getByID(ctx, id)
}

func (r *DynamoReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	return r.create(ctx, review)
}

func (r *DynamoReviewRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, id)
}
