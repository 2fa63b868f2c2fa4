package controllers

import (
	"context"
	"fmt"
	"log"
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

// CreateOrder records the client's cart snapshot as an order. Unit prices
// are taken from the live catalog, not the request, and the breakdown is
// computed server-side.
func CreateOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
		return
	}

	var body struct {
		OrderItems []struct {
			Product  string `json:"product" binding:"required"`
			Quantity int    `json:"quantity" binding:"required,min=1"`
		} `json:"orderItems" binding:"required,min=1,dive"`
		ShippingAddress models.ShippingAddress `json:"shippingAddress" binding:"required"`
		PaymentMethod   string                 `json:"paymentMethod" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order payload"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var orderItems []models.OrderItem
	for _, item := range body.OrderItems {
		productID, err := primitive.ObjectIDFromHex(item.Product)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		err = database.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found: " + item.Product})
			return
		}
		if item.Quantity > product.CountInStock {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Not enough stock for %s, available: %d", product.Name, product.CountInStock),
			})
			return
		}

		orderItems = append(orderItems, models.OrderItem{
			Product:  product.ID,
			Name:     product.Name,
			Image:    product.Image,
			Quantity: item.Quantity,
			Price:    product.Price,
		})
	}

	itemsPrice, taxPrice, shippingPrice, totalPrice := models.ComputePrices(orderItems)

	order := models.Order{
		ID:              primitive.NewObjectID(),
		User:            userID,
		OrderItems:      orderItems,
		ShippingAddress: body.ShippingAddress,
		PaymentMethod:   body.PaymentMethod,
		ItemsPrice:      itemsPrice,
		TaxPrice:        taxPrice,
		ShippingPrice:   shippingPrice,
		TotalPrice:      totalPrice,
		Status:          models.OrderStatusCreated,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	var decremented []models.OrderItem
	for _, item := range orderItems {
		result, err := database.ProductCollection.UpdateOne(
			ctx,
			bson.M{"_id": item.Product, "countInStock": bson.M{"$gte": item.Quantity}},
			bson.M{"$inc": bson.M{"countInStock": -item.Quantity}},
		)
		if err != nil || result.MatchedCount == 0 {
			rollbackStock(ctx, decremented)
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Not enough stock for %s", item.Name),
			})
			return
		}
		decremented = append(decremented, item)
	}

	_, err := database.OrderCollection.InsertOne(ctx, order)
	if err != nil {
		rollbackStock(ctx, decremented)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	invalidateOrderItemsCache(orderItems)

	c.JSON(http.StatusCreated, gin.H{"message": "Order created", "data": order})
}

// rollbackStock restores decremented stock when order creation fails
// partway through. Restore failures are logged; there is no further
// compensation.
func rollbackStock(ctx context.Context, items []models.OrderItem) {
	for _, item := range items {
		_, err := database.ProductCollection.UpdateOne(
			ctx,
			bson.M{"_id": item.Product},
			bson.M{"$inc": bson.M{"countInStock": item.Quantity}},
		)
		if err != nil {
			log.Println("Failed to roll back stock for product", item.Product.Hex(), ":", err)
		}
	}
}

// invalidateOrderItemsCache drops the cached detail entry of every
// ordered product along with the listings, so stale countInStock never
// outlives the order.
func invalidateOrderItemsCache(items []models.OrderItem) {
	for _, item := range items {
		invalidateProductCache(item.Product.Hex())
	}
}

func GetMyOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.OrderCollection.Find(ctx, bson.M{"user": userID}, opts)
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

// GetOrderByID returns one order. Customers can only see their own;
// admins can see any.
func GetOrderByID(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
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

	isAdmin, _ := c.Get("isAdmin")
	if order.User != userID && isAdmin != true {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": order})
}

// PayOrder confirms a client-side payment capture against the order.
func PayOrder(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
		return
	}

	var body models.PaymentResult
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment result"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	err = database.OrderCollection.FindOne(ctx, bson.M{"_id": objID, "user": userID}).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := order.MarkPaid(body, time.Now()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := bson.M{"$set": bson.M{
		"isPaid":        order.IsPaid,
		"paidAt":        order.PaidAt,
		"paymentResult": order.PaymentResult,
		"updatedAt":     time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Order
	err = database.OrderCollection.FindOneAndUpdate(ctx, bson.M{"_id": objID, "isPaid": false}, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order is already paid"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order paid", "data": updated})
}

// CancelOrder cancels the caller's own order. The conditional filter
// rejects anything already delivered or cancelled.
func CancelOrder(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"_id":         objID,
		"user":        userID,
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
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order not found or cannot be cancelled"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
}
