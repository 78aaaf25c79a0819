package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int64  `dynamodbav:"id"`
	Name string `dynamodbav:"name"`
}

// fakeClient records requests and replays canned responses.
type fakeClient struct {
	Client

	puts        []*dynamodb.PutItemInput
	putErr      error
	getItem     map[string]types.AttributeValue
	updates     []*dynamodb.UpdateItemInput
	updateAttrs map[string]types.AttributeValue
	batches     []map[string][]types.WriteRequest
	unprocessed int
	describeErr error
	scanPages   []*dynamodb.ScanOutput
	scans       []*dynamodb.ScanInput
}

func (f *fakeClient) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.puts = append(f.puts, in)
	return &dynamodb.PutItemOutput{}, f.putErr
}

func (f *fakeClient) GetItem(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.getItem}, nil
}

func (f *fakeClient) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updates = append(f.updates, in)
	return &dynamodb.UpdateItemOutput{Attributes: f.updateAttrs}, nil
}

func (f *fakeClient) DescribeTable(context.Context, *dynamodb.DescribeTableInput, ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	return &dynamodb.DescribeTableOutput{}, f.describeErr
}

// BatchWriteItem hands back the first request of every call as unprocessed
// while f.unprocessed is positive.
func (f *fakeClient) BatchWriteItem(_ context.Context, in *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	f.batches = append(f.batches, in.RequestItems)
	out := &dynamodb.BatchWriteItemOutput{}
	if f.unprocessed > 0 {
		f.unprocessed--
		for table, reqs := range in.RequestItems {
			out.UnprocessedItems = map[string][]types.WriteRequest{table: reqs[:1]}
		}
	}
	return out, nil
}

func (f *fakeClient) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scans = append(f.scans, in)
	page := f.scanPages[0]
	f.scanPages = f.scanPages[1:]
	return page, nil
}

func number(v string) types.AttributeValue { return &types.AttributeValueMemberN{Value: v} }
func str(v string) types.AttributeValue    { return &types.AttributeValueMemberS{Value: v} }

func TestIncrement(t *testing.T) {
	client := &fakeClient{updateAttrs: map[string]types.AttributeValue{"seq": number("42")}}
	svc := NewDynamoService[item](client, "counters", nil)

	n, err := svc.Increment(context.Background(), CreateStringKey("name", "phones"), "seq")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	require.Len(t, client.updates, 1)
	in := client.updates[0]
	assert.Equal(t, "counters", aws.ToString(in.TableName))
	assert.Equal(t, types.ReturnValueUpdatedNew, in.ReturnValues)
	assert.Contains(t, aws.ToString(in.UpdateExpression), "ADD")
	assert.Equal(t, str("phones"), in.Key["name"])
}

func TestIncrementMissingAttribute(t *testing.T) {
	svc := NewDynamoService[item](&fakeClient{}, "counters", nil)
	_, err := svc.Increment(context.Background(), CreateStringKey("name", "phones"), "seq")
	assert.ErrorContains(t, err, "counter seq missing")
}

func TestPutItemCondition(t *testing.T) {
	client := &fakeClient{putErr: &types.ConditionalCheckFailedException{}}
	svc := NewDynamoService[item](client, "brands", nil)

	cond := expression.AttributeNotExists(expression.Name("id"))
	err := svc.PutItem(context.Background(), item{ID: 3, Name: "Asus"}, &cond)
	var ccf *types.ConditionalCheckFailedException
	require.ErrorAs(t, err, &ccf)

	in := client.puts[0]
	assert.Equal(t, number("3"), in.Item["id"])
	assert.Equal(t, str("Asus"), in.Item["name"])
	assert.Contains(t, aws.ToString(in.ConditionExpression), "attribute_not_exists")
}

func TestGetItem(t *testing.T) {
	client := &fakeClient{}
	svc := NewDynamoService[item](client, "brands", nil)

	got, err := svc.GetItem(context.Background(), CreateNumberKey(1))
	require.NoError(t, err)
	assert.Nil(t, got)

	client.getItem = map[string]types.AttributeValue{"id": number("1"), "name": str("Apple")}
	got, err = svc.GetItem(context.Background(), CreateNumberKey(1))
	require.NoError(t, err)
	assert.Equal(t, &item{ID: 1, Name: "Apple"}, got)
}

func TestDeleteBatchChunks(t *testing.T) {
	client := &fakeClient{}
	svc := NewDynamoService[item](client, "reviews", nil)

	keys := make([]map[string]types.AttributeValue, 0, 60)
	for i := range 60 {
		keys = append(keys, CreateNumberKey(int64(i+1)))
	}
	require.NoError(t, svc.DeleteBatch(context.Background(), keys))

	require.Len(t, client.batches, 3)
	assert.Len(t, client.batches[0]["reviews"], 25)
	assert.Len(t, client.batches[1]["reviews"], 25)
	assert.Len(t, client.batches[2]["reviews"], 10)
}

func TestDeleteBatchRetriesUnprocessed(t *testing.T) {
	client := &fakeClient{unprocessed: 1}
	svc := NewDynamoService[item](client, "reviews", nil)

	keys := []map[string]types.AttributeValue{CreateNumberKey(1), CreateNumberKey(2)}
	require.NoError(t, svc.DeleteBatch(context.Background(), keys))
	require.Len(t, client.batches, 2)
	assert.Len(t, client.batches[1]["reviews"], 1)
}

func TestDeleteBatchGivesUp(t *testing.T) {
	client := &fakeClient{unprocessed: MaxRetryAttempts}
	svc := NewDynamoService[item](client, "reviews", nil)

	err := svc.DeleteBatch(context.Background(), []map[string]types.AttributeValue{CreateNumberKey(1)})
	assert.ErrorContains(t, err, "unprocessed")
	assert.Len(t, client.batches, MaxRetryAttempts)
}

func TestTableExists(t *testing.T) {
	client := &fakeClient{describeErr: &types.ResourceNotFoundException{}}
	svc := NewDynamoService[item](client, "phones", nil)

	ok, err := svc.TableExists(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	client.describeErr = errors.New("throttled")
	_, err = svc.TableExists(context.Background())
	assert.ErrorContains(t, err, "throttled")
}

func TestScanFollowsPages(t *testing.T) {
	client := &fakeClient{scanPages: []*dynamodb.ScanOutput{
		{
			Items:            []map[string]types.AttributeValue{{"id": number("1"), "name": str("A")}},
			LastEvaluatedKey: CreateNumberKey(1),
		},
		{
			Items: []map[string]types.AttributeValue{{"id": number("2"), "name": str("B")}},
		},
	}}
	svc := NewDynamoService[item](client, "brands", nil)

	filter := expression.Name("name").BeginsWith("A")
	got, err := svc.Scan(context.Background(), ScanRequest{FilterBuilder: &filter})
	require.NoError(t, err)
	assert.Equal(t, []item{{1, "A"}, {2, "B"}}, got)

	require.Len(t, client.scans, 2)
	assert.Contains(t, aws.ToString(client.scans[0].FilterExpression), "begins_with")
	assert.Equal(t, CreateNumberKey(1), client.scans[1].ExclusiveStartKey)
}

func TestCountSumsPages(t *testing.T) {
	client := &fakeClient{scanPages: []*dynamodb.ScanOutput{
		{Count: 2, LastEvaluatedKey: CreateNumberKey(9)},
		{Count: 3},
	}}
	svc := NewDynamoService[item](client, "phones", nil)

	n, err := svc.Count(context.Background(), ScanRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.Equal(t, types.SelectCount, client.scans[0].Select)
}
