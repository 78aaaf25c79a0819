package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

const (
	// DynamoDB limits
	MaxBatchWriteItems = 25
	MaxRetryAttempts   = 3

	// Table creation timeout
	TableCreationTimeout = 5 * time.Minute
)

// Client is the subset of *dynamodb.Client the service relies on.
type Client interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// DynamoService provides a generic interface for DynamoDB operations
type DynamoService[T any] struct {
	client    Client
	tableName string
	logger    *zap.Logger
}

// NewDynamoService creates a new DynamoDB service instance
func NewDynamoService[T any](client Client, tableName string, logger *zap.Logger) *DynamoService[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DynamoService[T]{
		client:    client,
		tableName: tableName,
		logger:    logger.With(zap.String("table", tableName)),
	}
}

func (s *DynamoService[T]) TableName() string {
	return s.tableName
}

// TableDefinition holds table schema configuration
type TableDefinition struct {
	AttributeDefinitions   []types.AttributeDefinition
	KeySchema              []types.KeySchemaElement
	GlobalSecondaryIndexes []types.GlobalSecondaryIndex
	BillingMode            types.BillingMode
}

// CreateTableWithDefinition creates a table with custom schema
func (s *DynamoService[T]) CreateTableWithDefinition(ctx context.Context, def TableDefinition) error {
	input := &dynamodb.CreateTableInput{
		TableName:            aws.String(s.tableName),
		AttributeDefinitions: def.AttributeDefinitions,
		KeySchema:            def.KeySchema,
		BillingMode:          def.BillingMode,
	}
	if len(def.GlobalSecondaryIndexes) > 0 {
		input.GlobalSecondaryIndexes = def.GlobalSecondaryIndexes
	}

	_, err := s.client.CreateTable(ctx, input)
	if err != nil {
		var resourceInUseEx *types.ResourceInUseException
		if errors.As(err, &resourceInUseEx) {
			s.logger.Info("table already exists")
			return nil
		}
		return fmt.Errorf("failed to create table %s: %w", s.tableName, err)
	}

	return s.waitForTableActive(ctx)
}

// CreateTable creates a table keyed by a single attribute.
func (s *DynamoService[T]) CreateTable(ctx context.Context, keyName string, keyType types.ScalarAttributeType) error {
	def := TableDefinition{
		AttributeDefinitions: []types.AttributeDefinition{
			{
				AttributeName: aws.String(keyName),
				AttributeType: keyType,
			},
		},
		KeySchema: []types.KeySchemaElement{
			{
				AttributeName: aws.String(keyName),
				KeyType:       types.KeyTypeHash,
			},
		},
		BillingMode: types.BillingModePayPerRequest,
	}

	return s.CreateTableWithDefinition(ctx, def)
}

func (s *DynamoService[T]) waitForTableActive(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, TableCreationTimeout)
	defer cancel()

	waiter := dynamodb.NewTableExistsWaiter(s.client)
	err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.tableName),
	}, TableCreationTimeout)
	if err != nil {
		return fmt.Errorf("failed waiting for table %s to be active: %w", s.tableName, err)
	}

	s.logger.Info("table created")
	return nil
}

// TableExists checks if the table exists
func (s *DynamoService[T]) TableExists(ctx context.Context) (bool, error) {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.tableName),
	})
	if err != nil {
		var notFoundEx *types.ResourceNotFoundException
		if errors.As(err, &notFoundEx) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check table existence for %s: %w", s.tableName, err)
	}

	return true, nil
}

// EnsureTable creates the table when it is missing.
func (s *DynamoService[T]) EnsureTable(ctx context.Context, keyName string, keyType types.ScalarAttributeType) error {
	exist, err := s.TableExists(ctx)
	if err != nil {
		return err
	}
	if exist {
		return nil
	}
	return s.CreateTable(ctx, keyName, keyType)
}

// PutItem writes data, guarded by condition when it is not nil.
func (s *DynamoService[T]) PutItem(ctx context.Context, data T, condition *expression.ConditionBuilder) error {
	item, err := attributevalue.MarshalMap(data)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	}
	if condition != nil {
		expr, err := expression.NewBuilder().WithCondition(*condition).Build()
		if err != nil {
			return fmt.Errorf("error when build condition expression: %w", err)
		}
		input.ConditionExpression = expr.Condition()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	_, err = s.client.PutItem(ctx, input)
	if err != nil {
		var conditionalCheckEx *types.ConditionalCheckFailedException
		if errors.As(err, &conditionalCheckEx) {
			return fmt.Errorf("condition check failed: %w", err)
		}
		return fmt.Errorf("failed to add item to table %s: %w", s.tableName, err)
	}

	return nil
}

// GetItem retrieves a single item by key. A missing item yields (nil, nil).
func (s *DynamoService[T]) GetItem(ctx context.Context, key map[string]types.AttributeValue) (*T, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item from table %s: %w", s.tableName, err)
	}

	if result.Item == nil {
		return nil, nil
	}

	var item T
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}

	return &item, nil
}

// DeleteItem removes an item from the table
func (s *DynamoService[T]) DeleteItem(ctx context.Context, key map[string]types.AttributeValue) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete item from table %s: %w", s.tableName, err)
	}

	return nil
}

// DeleteBatch removes items in batches (handles DynamoDB 25-item limit)
func (s *DynamoService[T]) DeleteBatch(ctx context.Context, keys []map[string]types.AttributeValue) error {
	for i := 0; i < len(keys); i += MaxBatchWriteItems {
		end := min(i+MaxBatchWriteItems, len(keys))

		requests := make([]types.WriteRequest, 0, end-i)
		for _, key := range keys[i:end] {
			requests = append(requests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{Key: key},
			})
		}
		if err := s.processBatch(ctx, requests); err != nil {
			return fmt.Errorf("failed to process batch %d-%d: %w", i, end-1, err)
		}
	}
	return nil
}

func (s *DynamoService[T]) processBatch(ctx context.Context, writeRequests []types.WriteRequest) error {
	// Handle unprocessed items with exponential backoff
	unprocessedItems := map[string][]types.WriteRequest{
		s.tableName: writeRequests,
	}

	for attempt := 0; attempt < MaxRetryAttempts && len(unprocessedItems) > 0; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt*attempt) * 100 * time.Millisecond
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		result, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: unprocessedItems,
		})
		if err != nil {
			return fmt.Errorf("batch write failed on attempt %d: %w", attempt+1, err)
		}

		unprocessedItems = result.UnprocessedItems
	}

	if len(unprocessedItems) > 0 {
		return fmt.Errorf("failed to process all items after %d attempts, %d items remain unprocessed",
			MaxRetryAttempts, len(unprocessedItems[s.tableName]))
	}

	return nil
}

// Increment atomically adds one to a numeric attribute and returns the new value.
func (s *DynamoService[T]) Increment(ctx context.Context, key map[string]types.AttributeValue, attr string) (int64, error) {
	update := expression.Add(expression.Name(attr), expression.Value(1))
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return 0, fmt.Errorf("error when build update expression: %w", err)
	}

	result, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       key,
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to update item in table %s: %w", s.tableName, err)
	}

	n, ok := result.Attributes[attr].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("counter %s missing from update result", attr)
	}
	return strconv.ParseInt(n.Value, 10, 64)
}

type ScanRequest struct {
	FilterBuilder     *expression.ConditionBuilder
	ProjectionBuilder *expression.ProjectionBuilder
	// Select COUNT instead of items; Scan then returns no items.
	CountOnly bool
}

// Scan reads the whole table page by page, applying the filter on the server.
func (s *DynamoService[T]) Scan(ctx context.Context, request ScanRequest) ([]T, error) {
	input, err := s.scanInput(request)
	if err != nil {
		return nil, err
	}

	var items []T
	paginator := dynamodb.NewScanPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan failed for table %s: %w", s.tableName, err)
		}
		var pageItems []T
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageItems); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scan results: %w", err)
		}
		items = append(items, pageItems...)
	}

	return items, nil
}

// Count returns the number of items matching the request filter.
func (s *DynamoService[T]) Count(ctx context.Context, request ScanRequest) (int64, error) {
	request.CountOnly = true
	input, err := s.scanInput(request)
	if err != nil {
		return 0, err
	}

	var total int64
	paginator := dynamodb.NewScanPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, fmt.Errorf("count failed for table %s: %w", s.tableName, err)
		}
		total += int64(page.Count)
	}
	return total, nil
}

func (s *DynamoService[T]) scanInput(request ScanRequest) (*dynamodb.ScanInput, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.tableName),
	}
	if request.CountOnly {
		input.Select = types.SelectCount
	}
	if request.FilterBuilder == nil && request.ProjectionBuilder == nil {
		return input, nil
	}

	builder := expression.NewBuilder()
	if request.FilterBuilder != nil {
		builder = builder.WithFilter(*request.FilterBuilder)
	}
	if request.ProjectionBuilder != nil {
		builder = builder.WithProjection(*request.ProjectionBuilder)
	}
	expr, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("couldn't build expressions for scan: %w", err)
	}

	input.ExpressionAttributeNames = expr.Names()
	input.ExpressionAttributeValues = expr.Values()
	input.FilterExpression = expr.Filter()
	input.ProjectionExpression = expr.Projection()
	return input, nil
}

// CreateNumberKey builds the key of a table keyed by a numeric "id".
func CreateNumberKey(id int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
	}
}

// Helper function to create a simple key for string IDs
func CreateStringKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		name: &types.AttributeValueMemberS{Value: value},
	}
}
