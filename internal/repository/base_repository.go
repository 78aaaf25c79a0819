package repository

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/quochao170402/cekspek/internal/domain"
	"github.com/quochao170402/cekspek/service"
)

const (
	countersTable = "counters"
	counterKey    = "name"
	counterAttr   = "seq"
)

type counter struct {
	Name string `dynamodbav:"name"`
	Seq  int64  `dynamodbav:"seq"`
}

// entityPtr lets the generic repository assign ids and timestamps on *T.
type entityPtr[T any] interface {
	*T
	domain.Entity
}

// dynamoRepository holds the operations shared by every DynamoDB table.
// Ids come from an atomic counter per table, since DynamoDB has no sequences.
type dynamoRepository[T domain.Table, P entityPtr[T]] struct {
	service  *service.DynamoService[T]
	counters *service.DynamoService[counter]
	name     string
}

func newDynamoRepository[T domain.Table, P entityPtr[T]](client service.Client, prefix string, logger *zap.Logger) *dynamoRepository[T, P] {
	var zero T
	return &dynamoRepository[T, P]{
		service:  service.NewDynamoService[T](client, prefix+zero.TableName(), logger),
		counters: service.NewDynamoService[counter](client, prefix+countersTable, logger),
		name:     zero.TableName(),
	}
}

func (r *dynamoRepository[T, P]) ensureTables(ctx context.Context) error {
	if err := r.service.EnsureTable(ctx, "id", types.ScalarAttributeTypeN); err != nil {
		return err
	}
	return r.counters.EnsureTable(ctx, counterKey, types.ScalarAttributeTypeS)
}

func (r *dynamoRepository[T, P]) nextID(ctx context.Context) (int64, error) {
	return r.counters.Increment(ctx, service.CreateStringKey(counterKey, r.name), counterAttr)
}

// create assigns the id and timestamps before writing. It never overwrites.
func (r *dynamoRepository[T, P]) create(ctx context.Context, entity *T) error {
	id, err := r.nextID(ctx)
	if err != nil {
		return storeErr("create "+r.name, err)
	}
	p := P(entity)
	p.SetID(id)

	if timestamped, ok := any(entity).(domain.TimestampedEntity); ok {
		now := time.Now().UTC()
		timestamped.SetCreatedAt(now)
		timestamped.SetUpdatedAt(now)
	}

	cond := expression.AttributeNotExists(expression.Name("id"))
	if err := r.service.PutItem(ctx, *entity, &cond); err != nil {
		return storeErr("create "+r.name, err)
	}
	return nil
}

// update replaces an existing item and refreshes its update timestamp.
func (r *dynamoRepository[T, P]) update(ctx context.Context, entity *T) error {
	if timestamped, ok := any(entity).(domain.TimestampedEntity); ok {
		timestamped.SetUpdatedAt(time.Now().UTC())
	}

	cond := expression.AttributeExists(expression.Name("id"))
	if err := r.service.PutItem(ctx, *entity, &cond); err != nil {
		return storeErr("update "+r.name, err)
	}
	return nil
}

func (r *dynamoRepository[T, P]) getByID(ctx context.Context, id int64) (*T, error) {
	item, err := r.service.GetItem(ctx, service.CreateNumberKey(id))
	if err != nil {
		return nil, storeErr("get "+r.name, err)
	}
	return item, nil
}

func (r *dynamoRepository[T, P]) deleteByID(ctx context.Context, id int64) error {
	if err := r.service.DeleteItem(ctx, service.CreateNumberKey(id)); err != nil {
		return storeErr("delete "+r.name, err)
	}
	return nil
}

func (r *dynamoRepository[T, P]) scan(ctx context.Context, filter *expression.ConditionBuilder) ([]T, error) {
	items, err := r.service.Scan(ctx, service.ScanRequest{FilterBuilder: filter})
	if err != nil {
		return nil, storeErr("list "+r.name, err)
	}
	return items, nil
}

func (r *dynamoRepository[T, P]) count(ctx context.Context, filter *expression.ConditionBuilder) (int64, error) {
	n, err := r.service.Count(ctx, service.ScanRequest{FilterBuilder: filter})
	if err != nil {
		return 0, storeErr("count "+r.name, err)
	}
	return n, nil
}

func (r *dynamoRepository[T, P]) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, nil)
}

// exists reports whether any item other than exceptID matches filter.
func (r *dynamoRepository[T, P]) exists(ctx context.Context, filter expression.ConditionBuilder, exceptID int64) (bool, error) {
	if exceptID != 0 {
		filter = filter.And(expression.Name("id").NotEqual(expression.Value(exceptID)))
	}
	n, err := r.count(ctx, &filter)
	return n > 0, err
}
