package services

import (
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"

	"github.com/restycailao/CAMSHOP-sub000/config"
)

type pushMessage struct {
	To    string `json:"to"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Sound string `json:"sound"`
}

// SendOrderDeliveredPush fires an Expo push notification at the user's
// registered device token. Best effort, same as email.
func SendOrderDeliveredPush(pushToken, orderID string) {
	if pushToken == "" {
		return
	}

	endpoint := config.GetEnv("EXPO_PUSH_URL", "https://exp.host/--/api/v2/push/send")

	resp, err := resty.New().R().
		SetHeader("Content-Type", "application/json").
		SetBody(pushMessage{
			To:    pushToken,
			Title: "Order delivered",
			Body:  fmt.Sprintf("Your order %s has been delivered.", orderID),
			Sound: "default",
		}).
		Post(endpoint)
	if err != nil {
		log.Println("Failed to send push notification for order", orderID, ":", err)
		return
	}
	if resp.IsError() {
		log.Println("Push notification for order", orderID, "rejected:", resp.Status())
		return
	}
	log.Println("Push notification sent for order", orderID)
}
