package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, url, nil)
	return c
}

func TestBuildProductFilterEmpty(t *testing.T) {
	c := testContext(t, "/api/products")

	filter, err := buildProductFilter(c)
	require.NoError(t, err)
	assert.Empty(t, filter)
}

func TestBuildProductFilterKeyword(t *testing.T) {
	c := testContext(t, "/api/products?keyword=canon")

	filter, err := buildProductFilter(c)
	require.NoError(t, err)
	assert.Equal(t, bson.M{"$regex": "canon", "$options": "i"}, filter["name"])
}

func TestBuildProductFilterCategoryAndPrice(t *testing.T) {
	catID := primitive.NewObjectID()
	c := testContext(t, "/api/products?category="+catID.Hex()+"&minPrice=100&maxPrice=500")

	filter, err := buildProductFilter(c)
	require.NoError(t, err)
	assert.Equal(t, catID, filter["category"])
	assert.Equal(t, bson.M{"$gte": float64(100), "$lte": float64(500)}, filter["price"])
}

func TestBuildProductFilterBadCategory(t *testing.T) {
	c := testContext(t, "/api/products?category=not-an-id")

	_, err := buildProductFilter(c)
	require.Error(t, err)
}

func TestBuildProductFilterIgnoresNonPositivePrices(t *testing.T) {
	c := testContext(t, "/api/products?minPrice=-5&maxPrice=abc")

	filter, err := buildProductFilter(c)
	require.NoError(t, err)
	_, hasPrice := filter["price"]
	assert.False(t, hasPrice)
}
