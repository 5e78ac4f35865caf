package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendEmail sends an HTML email through the configured SMTP relay.
func SendEmail(to, subject, body string) error {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(os.Getenv("SMTP_HOST"), port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// SendPaymentConfirmation notifies the customer that payment was received.
func SendPaymentConfirmation(to, orderNumber string, amount float64) error {
	subject := fmt.Sprintf("Payment received for order %s", orderNumber)
	body := fmt.Sprintf(`
		<h2>Thank you for your order!</h2>
		<p>We have received your payment of <b>%.2f</b> for order <b>%s</b>.</p>
		<p>You can track your order anytime using your order number and email.</p>
	`, amount, orderNumber)
	return SendEmail(to, subject, body)
}

// SendOrderCancellation notifies the customer that the order was cancelled.
func SendOrderCancellation(to, orderNumber, reason string) error {
	subject := fmt.Sprintf("Order %s cancelled", orderNumber)
	body := fmt.Sprintf(`
		<h2>Your order has been cancelled</h2>
		<p>Order <b>%s</b> was cancelled.</p>
		<p>Reason: %s</p>
	`, orderNumber, reason)
	return SendEmail(to, subject, body)
}
