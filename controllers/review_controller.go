package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/restycailao/CAMSHOP-sub000/database"
	"github.com/restycailao/CAMSHOP-sub000/models"
)

// verifyEligibleToReview reports whether the user has a paid and
// delivered order containing the product. Reviews are for verified
// purchases only.
func verifyEligibleToReview(ctx context.Context, productID, userID primitive.ObjectID) (bool, error) {
	cursor, err := database.OrderCollection.Find(ctx, bson.M{
		"user":               userID,
		"orderItems.product": productID,
	})
	if err != nil {
		return false, err
	}

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return false, err
	}

	for i := range orders {
		if orders[i].EligibleForReview(productID, userID) {
			return true, nil
		}
	}
	return false, nil
}

func CheckReviewEligibility(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	eligible, err := verifyEligibleToReview(ctx, productID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check eligibility"})
		return
	}
	if !eligible {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only review products from a paid and delivered order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Eligible to review", "eligible": true})
}

// saveProductReviews persists the aggregate's review state in one update
// so reviews, rating and numReviews never drift apart.
func saveProductReviews(ctx context.Context, product *models.Product) error {
	_, err := database.ProductCollection.UpdateOne(ctx, bson.M{"_id": product.ID}, bson.M{
		"$set": bson.M{
			"reviews":    product.Reviews,
			"rating":     product.Rating,
			"numReviews": product.NumReviews,
			"updatedAt":  time.Now(),
		},
	})
	return err
}

func CreateReview(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
		return
	}

	var body struct {
		Rating  float64 `json:"rating" binding:"required,min=1,max=5"`
		Comment string  `json:"comment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating (1-5) and comment are required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var product models.Product
	err = database.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	eligible, err := verifyEligibleToReview(ctx, productID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check eligibility"})
		return
	}
	if !eligible {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only review products from a paid and delivered order"})
		return
	}

	var user models.User
	err = database.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	review := models.Review{
		ID:        primitive.NewObjectID(),
		User:      userID,
		Name:      user.Name,
		Rating:    body.Rating,
		Comment:   body.Comment,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := product.AddReview(review); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this product"})
		return
	}

	if err := saveProductReviews(ctx, &product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save review"})
		return
	}

	invalidateProductCache(productID.Hex())

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Review added",
		"data":       review,
		"rating":     product.Rating,
		"numReviews": product.NumReviews,
	})
}

func UpdateReview(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
		return
	}

	var body struct {
		Rating  float64 `json:"rating" binding:"required,min=1,max=5"`
		Comment string  `json:"comment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating (1-5) and comment are required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var product models.Product
	err = database.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if err := product.UpdateReview(userID, body.Rating, body.Comment); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	if err := saveProductReviews(ctx, &product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save review"})
		return
	}

	invalidateProductCache(productID.Hex())

	c.JSON(http.StatusOK, gin.H{
		"message":    "Review updated",
		"rating":     product.Rating,
		"numReviews": product.NumReviews,
	})
}

func DeleteReview(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var product models.Product
	err = database.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if err := product.DeleteReview(userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	if err := saveProductReviews(ctx, &product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}

	invalidateProductCache(productID.Hex())

	c.JSON(http.StatusOK, gin.H{
		"message":    "Review deleted",
		"rating":     product.Rating,
		"numReviews": product.NumReviews,
	})
}
