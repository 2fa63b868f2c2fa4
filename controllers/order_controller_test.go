package controllers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/restycailao/CAMSHOP-sub000/cache"
	"github.com/restycailao/CAMSHOP-sub000/models"
)

func TestInvalidateOrderItemsCacheDropsDetailEntries(t *testing.T) {
	c := cache.Init(time.Minute)

	ordered1 := primitive.NewObjectID()
	ordered2 := primitive.NewObjectID()
	untouched := primitive.NewObjectID()

	c.Set("product:"+ordered1.Hex(), "camera one")
	c.Set("product:"+ordered2.Hex(), "camera two")
	c.Set("product:"+untouched.Hex(), "camera three")
	c.Set("products:list:p1", "page one")

	invalidateOrderItemsCache([]models.OrderItem{
		{Product: ordered1, Quantity: 1},
		{Product: ordered2, Quantity: 2},
	})

	_, found := c.Value("product:" + ordered1.Hex())
	assert.False(t, found, "ordered product detail must not serve stale stock")
	_, found = c.Value("product:" + ordered2.Hex())
	assert.False(t, found, "ordered product detail must not serve stale stock")
	_, found = c.Value("products:list:p1")
	assert.False(t, found)

	_, found = c.Value("product:" + untouched.Hex())
	require.True(t, found, "products outside the order keep their cache entry")
}

func TestRollbackStockWithNothingDecremented(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// Nothing was decremented before the failure, so there is nothing to
	// restore and no collection access.
	rollbackStock(ctx, nil)
	rollbackStock(ctx, []models.OrderItem{})
}
