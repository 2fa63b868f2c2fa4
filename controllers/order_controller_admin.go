package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/restycailao/CAMSHOP-sub000/database"
	"github.com/restycailao/CAMSHOP-sub000/models"
	"github.com/restycailao/CAMSHOP-sub000/services"
)

func GetOrdersAdmin(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.OrderCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var orders []models.Order = []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": orders})
}

// DeliverOrder marks a paid order delivered and kicks off the customer
// notifications. Notification failures never fail the request.
func DeliverOrder(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	err = database.OrderCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := order.MarkDelivered(time.Now()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := bson.M{"$set": bson.M{
		"isDelivered": order.IsDelivered,
		"deliveredAt": order.DeliveredAt,
		"updatedAt":   time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Order
	err = database.OrderCollection.FindOneAndUpdate(ctx, bson.M{"_id": objID, "isDelivered": false}, update, opts).Decode(&updated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	var user models.User
	if err := database.UserCollection.FindOne(ctx, bson.M{"_id": updated.User}).Decode(&user); err == nil {
		go services.SendOrderDeliveredEmail(user.Email, user.Name, updated.ID.Hex(), updated.TotalPrice)
		go services.SendOrderDeliveredPush(user.ExpoPushToken, updated.ID.Hex())
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order delivered", "data": updated})
}

func CancelOrderAdmin(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"_id":         objID,
		"isDelivered": false,
		"status":      bson.M{"$ne": models.OrderStatusCancelled},
	}
	update := bson.M{"$set": bson.M{
		"status":    models.OrderStatusCancelled,
		"updatedAt": time.Now(),
	}}

	result, err := database.OrderCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order cannot be cancelled"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
}
