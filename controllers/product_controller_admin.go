package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/restycailao/CAMSHOP-sub000/database"
	"github.com/restycailao/CAMSHOP-sub000/models"
)

func CreateProduct(c *gin.Context) {
	var input struct {
		Name         string   `json:"name" binding:"required"`
		Brand        string   `json:"brand" binding:"required"`
		Category     string   `json:"category" binding:"required"`
		Image        string   `json:"image"`
		Images       []string `json:"images"`
		Description  string   `json:"description" binding:"required"`
		Price        float64  `json:"price" binding:"required,gt=0"`
		CountInStock int      `json:"countInStock" binding:"min=0"`
		Quantity     int      `json:"quantity" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	categoryID, err := primitive.ObjectIDFromHex(input.Category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var category models.Category
	err = database.CategoryCollection.FindOne(ctx, bson.M{"_id": categoryID}).Decode(&category)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	product := models.Product{
		ID:           primitive.NewObjectID(),
		User:         userID,
		Name:         input.Name,
		Brand:        input.Brand,
		Category:     categoryID,
		Image:        input.Image,
		Images:       input.Images,
		Description:  input.Description,
		Price:        input.Price,
		CountInStock: input.CountInStock,
		Quantity:     input.Quantity,
		Reviews:      []models.Review{},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	_, err = database.ProductCollection.InsertOne(ctx, product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	invalidateProductCache(product.ID.Hex())

	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "data": product})
}

func UpdateProduct(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var body struct {
		Name         *string  `json:"name"`
		Brand        *string  `json:"brand"`
		Category     *string  `json:"category"`
		Image        *string  `json:"image"`
		Images       []string `json:"images"`
		Description  *string  `json:"description"`
		Price        *float64 `json:"price"`
		CountInStock *int     `json:"countInStock"`
		Quantity     *int     `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{}
	if body.Name != nil {
		update["name"] = *body.Name
	}
	if body.Brand != nil {
		update["brand"] = *body.Brand
	}
	if body.Category != nil {
		categoryID, err := primitive.ObjectIDFromHex(*body.Category)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}
		var category models.Category
		if err := database.CategoryCollection.FindOne(ctx, bson.M{"_id": categoryID}).Decode(&category); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		update["category"] = categoryID
	}
	if body.Image != nil {
		update["image"] = *body.Image
	}
	if body.Images != nil {
		update["images"] = body.Images
	}
	if body.Description != nil {
		update["description"] = *body.Description
	}
	if body.Price != nil {
		if *body.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be greater than zero"})
			return
		}
		update["price"] = *body.Price
	}
	if body.CountInStock != nil {
		if *body.CountInStock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
			return
		}
		update["countInStock"] = *body.CountInStock
	}
	if body.Quantity != nil {
		update["quantity"] = *body.Quantity
	}
	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}
	update["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Product
	err = database.ProductCollection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": update}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	invalidateProductCache(objID.Hex())

	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "data": updated})
}

func DeleteProduct(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := database.ProductCollection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	invalidateProductCache(objID.Hex())

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted", "id": objID.Hex()})
}
