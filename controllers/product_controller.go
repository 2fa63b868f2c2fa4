package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/restycailao/CAMSHOP-sub000/cache"
	"github.com/restycailao/CAMSHOP-sub000/database"
	"github.com/restycailao/CAMSHOP-sub000/models"
)

const productPageSize = 10

// buildProductFilter turns the catalog query params into a Mongo filter:
// case-insensitive keyword match on name, category and price range.
func buildProductFilter(c *gin.Context) (bson.M, error) {
	filter := bson.M{}

	if keyword := c.Query("keyword"); keyword != "" {
		filter["name"] = bson.M{"$regex": keyword, "$options": "i"}
	}

	if cat := c.Query("category"); cat != "" {
		catID, err := primitive.ObjectIDFromHex(cat)
		if err != nil {
			return nil, fmt.Errorf("invalid category ID")
		}
		filter["category"] = catID
	}

	priceFilter := bson.M{}
	if minPrice, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil && minPrice > 0 {
		priceFilter["$gte"] = minPrice
	}
	if maxPrice, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil && maxPrice > 0 {
		priceFilter["$lte"] = maxPrice
	}
	if len(priceFilter) > 0 {
		filter["price"] = priceFilter
	}

	return filter, nil
}

func GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	filter, err := buildProductFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cacheKey := fmt.Sprintf("products:list:p%d_k:%s_cat:%s_min:%s_max:%s",
		page, c.Query("keyword"), c.Query("category"), c.Query("minPrice"), c.Query("maxPrice"))
	if cached, found := cache.Get().Value(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := database.ProductCollection.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * productPageSize)).
		SetLimit(productPageSize).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := database.ProductCollection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	var products []models.Product = []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode products"})
		return
	}

	pages := total / productPageSize
	if total%productPageSize != 0 {
		pages++
	}

	response := gin.H{
		"message":  "Fetch success",
		"products": products,
		"page":     page,
		"pages":    pages,
		"total":    total,
	}
	cache.Get().Set(cacheKey, response)

	c.JSON(http.StatusOK, response)
}

func GetProductByID(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	cacheKey := "product:" + objID.Hex()
	if cached, found := cache.Get().Value(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product models.Product
	err = database.ProductCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	response := gin.H{"message": "Fetch success", "data": product}
	cache.Get().Set(cacheKey, response)

	c.JSON(http.StatusOK, response)
}

// GetTopProducts returns the best rated products for the home carousel.
func GetTopProducts(c *gin.Context) {
	topProductsSorted(c, "products:top", bson.D{{Key: "rating", Value: -1}}, 3)
}

// GetLatestProducts returns the most recently added products.
func GetLatestProducts(c *gin.Context) {
	topProductsSorted(c, "products:latest", bson.D{{Key: "createdAt", Value: -1}}, 8)
}

func topProductsSorted(c *gin.Context, cacheKey string, sort bson.D, limit int64) {
	if cached, found := cache.Get().Value(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(sort).SetLimit(limit)
	cursor, err := database.ProductCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	var products []models.Product = []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode products"})
		return
	}

	response := gin.H{"message": "Fetch success", "data": products}
	cache.Get().Set(cacheKey, response)

	c.JSON(http.StatusOK, response)
}

// invalidateProductCache drops every cached catalog read touching the
// given product. Call after any product or review mutation.
func invalidateProductCache(productID string) {
	cache.Get().Delete("product:" + productID)
	cache.Get().DeleteByPrefix("products:")
}
