package dynamodb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"ordbok-backend/domain/core/valueobjects"
	"ordbok-backend/domain/source"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// Item entity types
const (
	EntityTypeEntry    = "ENTRY"
	EntityTypeConcepts = "CONCEPTS"
)

// DynamoDBAPI is the subset of the DynamoDB client the repository uses
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// EntryRepository stores raw article documents and concept tables in a
// single table. Items are partitioned by dictionary:
//
//	PK = DICT#<dictionary>, SK = ENTRY#<id>  article document
//	PK = DICT#<dictionary>, SK = CONCEPTS    concept table
type EntryRepository struct {
	client    DynamoDBAPI
	tableName string
	logger    *zap.Logger
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(client DynamoDBAPI, tableName string, logger *zap.Logger) *EntryRepository {
	return &EntryRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// documentItem represents the DynamoDB item structure for a stored document
type documentItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	Dictionary string `dynamodbav:"Dictionary"`
	EntryID    int    `dynamodbav:"EntryID,omitempty"`
	Data       string `dynamodbav:"Data"`
	UpdatedAt  string `dynamodbav:"UpdatedAt"`
}

func partitionKey(dictionary valueobjects.Dictionary) string {
	return "DICT#" + dictionary.String()
}

func entrySortKey(id int) string {
	return "ENTRY#" + strconv.Itoa(id)
}

func itemKey(pk, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}
}

// GetEntry loads and decodes an article document. A missing item yields nil
// and no error.
func (r *EntryRepository) GetEntry(ctx context.Context, id valueobjects.EntryID) (*source.RawEntry, error) {
	data, found, err := r.getData(ctx, partitionKey(id.Dictionary()), entrySortKey(id.ID()))
	if err != nil {
		return nil, fmt.Errorf("failed to get entry %s: %w", id, err)
	}
	if !found {
		r.logger.Debug("Entry not found in DynamoDB", zap.String("entryID", id.String()))
		return nil, nil
	}

	entry, err := source.ParseEntry(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode entry %s: %w", id, err)
	}
	return entry, nil
}

// PutEntry stores an article document after checking that it decodes
func (r *EntryRepository) PutEntry(ctx context.Context, id valueobjects.EntryID, document []byte) error {
	if _, err := source.ParseEntry(document); err != nil {
		return fmt.Errorf("refusing to store entry %s: %w", id, err)
	}

	item := documentItem{
		PK:         partitionKey(id.Dictionary()),
		SK:         entrySortKey(id.ID()),
		EntityType: EntityTypeEntry,
		Dictionary: id.Dictionary().String(),
		EntryID:    id.ID(),
		Data:       string(document),
		UpdatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := r.putItem(ctx, item); err != nil {
		return fmt.Errorf("failed to save entry %s: %w", id, err)
	}
	return nil
}

// GetConceptTable loads a dictionary's concept table. A missing item yields
// nil and no error.
func (r *EntryRepository) GetConceptTable(ctx context.Context, dictionary valueobjects.Dictionary) (*source.ConceptTable, error) {
	data, found, err := r.getData(ctx, partitionKey(dictionary), EntityTypeConcepts)
	if err != nil {
		return nil, fmt.Errorf("failed to get concept table %s: %w", dictionary, err)
	}
	if !found {
		return nil, nil
	}

	table, err := source.ParseConceptTable(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode concept table %s: %w", dictionary, err)
	}
	return table, nil
}

// PutConceptTable stores a dictionary's concept table document
func (r *EntryRepository) PutConceptTable(ctx context.Context, dictionary valueobjects.Dictionary, document []byte) error {
	if _, err := source.ParseConceptTable(document); err != nil {
		return fmt.Errorf("refusing to store concept table %s: %w", dictionary, err)
	}

	item := documentItem{
		PK:         partitionKey(dictionary),
		SK:         EntityTypeConcepts,
		EntityType: EntityTypeConcepts,
		Dictionary: dictionary.String(),
		Data:       string(document),
		UpdatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := r.putItem(ctx, item); err != nil {
		return fmt.Errorf("failed to save concept table %s: %w", dictionary, err)
	}
	return nil
}

// Name identifies the store in readiness reports
func (r *EntryRepository) Name() string {
	return "dynamodb"
}

// Ping checks that the table exists and is reachable
func (r *EntryRepository) Ping(ctx context.Context) error {
	_, err := r.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return fmt.Errorf("failed to describe table %s: %w", r.tableName, err)
	}
	return nil
}

func (r *EntryRepository) getData(ctx context.Context, pk, sk string) ([]byte, bool, error) {
	projection := expression.NamesList(expression.Name("Data"))
	expr, err := expression.NewBuilder().WithProjection(projection).Build()
	if err != nil {
		return nil, false, fmt.Errorf("failed to build projection: %w", err)
	}

	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:                aws.String(r.tableName),
		Key:                      itemKey(pk, sk),
		ProjectionExpression:     expr.Projection(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		return nil, false, err
	}
	if result.Item == nil {
		return nil, false, nil
	}

	var item documentItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return []byte(item.Data), true, nil
}

func (r *EntryRepository) putItem(ctx context.Context, item documentItem) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		r.logger.Error("Failed to save item to DynamoDB",
			zap.Error(err),
			zap.String("pk", item.PK),
			zap.String("sk", item.SK),
		)
		return err
	}
	return nil
}
