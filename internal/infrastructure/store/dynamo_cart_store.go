package store

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/example/luxa-shop/internal/apperr"
)

// cartTTL is how long an untouched cart survives in DynamoDB.
const cartTTL = 30 * 24 * time.Hour

// DynamoAPI is the subset of the DynamoDB client the cart storage uses
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoCartStorage implements cart.Storage on a DynamoDB table keyed by
// cart_key. Items expire through the table's TTL attribute.
type DynamoCartStorage struct {
	client    DynamoAPI
	tableName string
	now       func() time.Time
}

// dynamoCart represents the DynamoDB item structure
type dynamoCart struct {
	CartKey   string `dynamodbav:"cart_key"`
	Data      string `dynamodbav:"data"`
	UpdatedAt string `dynamodbav:"updated_at"`
	ExpiresAt int64  `dynamodbav:"expires_at"`
}

func NewDynamoCartStorage(client DynamoAPI, tableName string) *DynamoCartStorage {
	return &DynamoCartStorage{client: client, tableName: tableName, now: time.Now}
}

func (s *DynamoCartStorage) Load(ctx context.Context, key string) ([]byte, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"cart_key": &types.AttributeValueMemberS{Value: key},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, apperr.Remote("get cart item", err)
	}
	if result.Item == nil {
		return nil, nil
	}

	var item dynamoCart
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	return []byte(item.Data), nil
}

func (s *DynamoCartStorage) Save(ctx context.Context, key string, data []byte) error {
	now := s.now()
	av, err := attributevalue.MarshalMap(dynamoCart{
		CartKey:   key,
		Data:      string(data),
		UpdatedAt: now.Format(time.RFC3339Nano),
		ExpiresAt: now.Add(cartTTL).Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		return apperr.Remote("put cart item", err)
	}
	return nil
}
