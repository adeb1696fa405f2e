// utils/email.go
package utils

import (
	"fmt"
	"html"
	"log"

	"motohub/models"

	"github.com/keighl/postmark"
)

// Notifier tells a customer that their payment was recorded.
type Notifier interface {
	SendPaymentReceipt(order models.Order, payment models.Payment) error
}

// EmailService handles sending emails using Postmark
type EmailService struct {
	client *postmark.Client
	sender string
}

// NewEmailService initializes and returns a new EmailService instance
func NewEmailService(apiToken, sender string) *EmailService {
	return &EmailService{
		client: postmark.NewClient(apiToken, ""),
		sender: sender,
	}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent, textContent string) error {
	_, err := es.client.SendEmail(postmark.Email{
		From:     es.sender,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: textContent,
		Tag:      "payment-receipt",
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendPaymentReceipt emails the order's customer a receipt for the recorded payment.
func (es *EmailService) SendPaymentReceipt(order models.Order, payment models.Payment) error {
	subject, htmlBody, textBody := paymentReceipt(order, payment)
	if err := es.SendEmail(order.CustomerEmail, subject, htmlBody, textBody); err != nil {
		return err
	}
	log.Printf("payment receipt sent for order %s", order.ID.Hex())
	return nil
}

func paymentReceipt(order models.Order, payment models.Payment) (subject, htmlBody, textBody string) {
	amount := order.Price
	if payment.Price > 0 {
		amount = payment.Price
	}
	subject = "Payment Received - MotoHub"
	textBody = fmt.Sprintf(
		"Thank you for your purchase!\n\nOrder: %s\nProduct: %s\nAmount: $%.2f\nTransaction: %s\n",
		order.ID.Hex(), order.ProductID, float64(amount), payment.TransactionID,
	)
	htmlBody = fmt.Sprintf(
		"<strong>Thank you for your purchase!</strong><br><br>Order: %s<br>Product: %s<br>Amount: <strong>$%.2f</strong><br>Transaction: %s",
		order.ID.Hex(), html.EscapeString(order.ProductID), float64(amount), html.EscapeString(payment.TransactionID),
	)
	return subject, htmlBody, textBody
}

// NoopNotifier is used when no mail provider is configured.
type NoopNotifier struct{}

func (NoopNotifier) SendPaymentReceipt(models.Order, models.Payment) error { return nil }
