package services

import (
	"fmt"
	"log"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/restycailao/CAMSHOP-sub000/config"
)

// SendOrderDeliveredEmail notifies the customer that their order arrived.
// Delivery email is best effort: failures are logged, never surfaced.
func SendOrderDeliveredEmail(toEmail, toName, orderID string, totalPrice float64) {
	host := config.GetEnv("SMTP_HOST", "")
	if host == "" {
		log.Println("SMTP_HOST not set, skipping delivery email for order", orderID)
		return
	}
	port, _ := strconv.Atoi(config.GetEnv("SMTP_PORT", "587"))
	user := config.GetEnv("SMTP_USER", "")
	pass := config.GetEnv("SMTP_PASSWORD", "")
	from := config.GetEnv("SMTP_FROM", user)

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Your order %s has been delivered", orderID))
	m.SetBody("text/html", fmt.Sprintf(
		"<p>Hi %s,</p><p>Your order <b>%s</b> (total $%.2f) has been delivered. Thank you for shopping with us!</p>",
		toName, orderID, totalPrice,
	))

	d := gomail.NewDialer(host, port, user, pass)
	if err := d.DialAndSend(m); err != nil {
		log.Println("Failed to send delivery email for order", orderID, ":", err)
		return
	}
	log.Println("Delivery email sent for order", orderID)
}
