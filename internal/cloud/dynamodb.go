package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/irrigatech/irrigation-monitoring-backend/internal/domain"
)

// DynamoDBClient mirrors canal readings into a cloud table for dashboards
// that read outside the primary database.
type DynamoDBClient struct {
	svc   *dynamodb.Client
	table string
	ctx   context.Context
}

func NewDynamoDBClient(region, table string) (*DynamoDBClient, error) {
	ctx := context.Background()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return &DynamoDBClient{
		svc:   dynamodb.NewFromConfig(cfg),
		table: table,
		ctx:   ctx,
	}, nil
}

// FlowReading is the DynamoDB shape for a canal reading.
type FlowReading struct {
	AdminID   string  `dynamodbav:"adminId"`
	Timestamp int64   `dynamodbav:"timestamp"`
	CanalID   string  `dynamodbav:"canalId"`
	FlowRate  float64 `dynamodbav:"flowRate"`
}

// PutFlowReading stores a canal reading keyed by admin and timestamp.
func (c *DynamoDBClient) PutFlowReading(rd *domain.CanalFlowReading) error {
	item := FlowReading{
		AdminID:   rd.AdminID,
		Timestamp: rd.Timestamp.Unix(),
		CanalID:   rd.CanalID,
		FlowRate:  rd.FlowRate,
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}

	_, err = c.svc.PutItem(c.ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put reading: %w", err)
	}
	return nil
}
