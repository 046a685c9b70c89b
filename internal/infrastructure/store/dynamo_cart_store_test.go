package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/example/luxa-shop/internal/apperr"
	"github.com/example/luxa-shop/internal/domain/cart"
	"github.com/example/luxa-shop/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo keeps items in memory keyed by cart_key
type fakeDynamo struct {
	items  map[string]map[string]types.AttributeValue
	puts   []*dynamodb.PutItemInput
	getErr error
	putErr error
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]types.AttributeValue)}
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	key := in.Key["cart_key"].(*types.AttributeValueMemberS).Value
	return &dynamodb.GetItemOutput{Item: f.items[key]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.puts = append(f.puts, in)
	if f.putErr != nil {
		return nil, f.putErr
	}
	key := in.Item["cart_key"].(*types.AttributeValueMemberS).Value
	f.items[key] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func TestDynamoCartStorage_RoundTrip(t *testing.T) {
	fake := newFakeDynamo()
	s := NewDynamoCartStorage(fake, "luxa-carts")
	s.now = func() time.Time { return time.Unix(1772359200, 0) }
	ctx := context.Background()

	data, err := s.Load(ctx, "luxa-cart:abc")
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, s.Save(ctx, "luxa-cart:abc", []byte(`[{"id":"x"}]`)))

	data, err = s.Load(ctx, "luxa-cart:abc")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"x"}]`, string(data))

	require.Len(t, fake.puts, 1)
	assert.Equal(t, "luxa-carts", aws.ToString(fake.puts[0].TableName))
	expires := fake.puts[0].Item["expires_at"].(*types.AttributeValueMemberN).Value
	assert.Equal(t, "1774951200", expires)
}

func TestDynamoCartStorage_BacksCartStore(t *testing.T) {
	s := NewDynamoCartStorage(newFakeDynamo(), "luxa-carts")
	ctx := context.Background()
	key := cart.StorageKey("session-1")

	c := cart.Open(ctx, s, key)
	_, err := c.AddItem(ctx, catalog.Product{ID: "p1", Name: "Gloss", Price: 900}, 2, "")
	require.NoError(t, err)

	reopened := cart.Open(ctx, s, key)
	assert.Equal(t, 2, reopened.TotalItems())
	assert.Equal(t, 1800, reopened.TotalPrice())
}

func TestDynamoCartStorage_Errors(t *testing.T) {
	fake := newFakeDynamo()
	fake.getErr = errors.New("throttled")
	fake.putErr = errors.New("throttled")
	s := NewDynamoCartStorage(fake, "luxa-carts")

	_, err := s.Load(context.Background(), "k")
	assert.ErrorIs(t, err, apperr.ErrRemote)

	err = s.Save(context.Background(), "k", []byte("[]"))
	assert.ErrorIs(t, err, apperr.ErrRemote)
}
