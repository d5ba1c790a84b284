package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/novabot-ai/novabot/internal/models"
)

// TicketRepository defines the interface for ticket audit persistence
type TicketRepository interface {
	SaveTicketRecord(ctx context.Context, record *models.TicketRecord) error
	GetTicketRecord(ctx context.Context, id string) (*models.TicketRecord, error)
	ListTicketRecords(ctx context.Context, stage *models.Stage, status *models.TicketStatus, limit int) ([]*models.TicketRecord, error)
}

// DynamoDBRepository implements TicketRepository using DynamoDB
type DynamoDBRepository struct {
	client    *dynamodb.Client
	tableName string
}

// NewDynamoDBRepository creates a new DynamoDB repository instance
func NewDynamoDBRepository(client *dynamodb.Client, tableName string) *DynamoDBRepository {
	return &DynamoDBRepository{
		client:    client,
		tableName: tableName,
	}
}

// SaveTicketRecord saves a ticket audit record to DynamoDB
func (r *DynamoDBRepository) SaveTicketRecord(ctx context.Context, record *models.TicketRecord) error {
	av, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal ticket record: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	_, err = r.client.PutItem(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to save ticket record to DynamoDB: %w", err)
	}

	return nil
}

// GetTicketRecord retrieves a ticket audit record by ID from DynamoDB
func (r *DynamoDBRepository) GetTicketRecord(ctx context.Context, id string) (*models.TicketRecord, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket record from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("ticket record not found: %s", id)
	}

	var record models.TicketRecord
	err = attributevalue.UnmarshalMap(result.Item, &record)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal ticket record: %w", err)
	}

	return &record, nil
}

// ListTicketRecords retrieves ticket records with optional filtering by stage and status
func (r *DynamoDBRepository) ListTicketRecords(ctx context.Context, stage *models.Stage, status *models.TicketStatus, limit int) ([]*models.TicketRecord, error) {
	// Build filter expression
	var filterExpression string
	expressionAttributeValues := make(map[string]types.AttributeValue)
	expressionAttributeNames := make(map[string]string)

	if stage != nil {
		filterExpression = "#stage = :stage"
		expressionAttributeNames["#stage"] = "stage"
		expressionAttributeValues[":stage"] = &types.AttributeValueMemberS{Value: stage.String()}
	}

	if status != nil {
		if filterExpression != "" {
			filterExpression += " AND "
		}
		filterExpression += "#status = :status"
		expressionAttributeNames["#status"] = "status"
		expressionAttributeValues[":status"] = &types.AttributeValueMemberS{Value: status.String()}
	}

	// Set default limit if not specified
	if limit <= 0 {
		limit = 100
	}

	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
		Limit:     aws.Int32(int32(limit)),
	}

	if filterExpression != "" {
		input.FilterExpression = aws.String(filterExpression)
		input.ExpressionAttributeValues = expressionAttributeValues
		input.ExpressionAttributeNames = expressionAttributeNames
	}

	result, err := r.client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to scan ticket records from DynamoDB: %w", err)
	}

	records := make([]*models.TicketRecord, 0, len(result.Items))
	for _, item := range result.Items {
		var record models.TicketRecord
		err = attributevalue.UnmarshalMap(item, &record)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal ticket record: %w", err)
		}
		records = append(records, &record)
	}

	return records, nil
}
