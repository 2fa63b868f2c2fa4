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

func GetCategories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := database.CategoryCollection.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var categories []models.Category = []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": categories})
}

func GetCategoryByID(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var category models.Category
	err = database.CategoryCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&category)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": category})
}

func CreateCategory(c *gin.Context) {
	var input struct {
		Name           string `json:"name" binding:"required"`
		CameraType     string `json:"cameraType" binding:"required"`
		SensorSize     string `json:"sensorSize"`
		PrimaryUseCase string `json:"primaryUseCase"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and cameraType are required"})
		return
	}

	if !models.IsValidCameraType(input.CameraType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid camera type"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var existing models.Category
	err := database.CategoryCollection.FindOne(ctx, bson.M{"name": input.Name}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Category name already exists"})
		return
	}

	category := models.Category{
		ID:             primitive.NewObjectID(),
		Name:           input.Name,
		CameraType:     input.CameraType,
		SensorSize:     input.SensorSize,
		PrimaryUseCase: input.PrimaryUseCase,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	_, err = database.CategoryCollection.InsertOne(ctx, category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "data": category})
}

func UpdateCategory(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var body struct {
		Name           *string `json:"name"`
		CameraType     *string `json:"cameraType"`
		SensorSize     *string `json:"sensorSize"`
		PrimaryUseCase *string `json:"primaryUseCase"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{}
	if body.Name != nil {
		var other models.Category
		err := database.CategoryCollection.FindOne(ctx, bson.M{
			"name": *body.Name,
			"_id":  bson.M{"$ne": objID},
		}).Decode(&other)
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Category name already exists"})
			return
		}
		update["name"] = *body.Name
	}
	if body.CameraType != nil {
		if !models.IsValidCameraType(*body.CameraType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid camera type"})
			return
		}
		update["cameraType"] = *body.CameraType
	}
	if body.SensorSize != nil {
		update["sensorSize"] = *body.SensorSize
	}
	if body.PrimaryUseCase != nil {
		update["primaryUseCase"] = *body.PrimaryUseCase
	}
	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}
	update["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Category
	err = database.CategoryCollection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": update}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category updated", "data": updated})
}

func DeleteCategory(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Refuse to orphan products still pointing at the category.
	count, err := database.ProductCollection.CountDocuments(ctx, bson.M{"category": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category is still in use by products"})
		return
	}

	result, err := database.CategoryCollection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted", "id": objID.Hex()})
}
