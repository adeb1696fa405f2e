package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"motohub/models"
	"motohub/repository"
	"motohub/utils"
)

type PaymentStore interface {
	Create(ctx context.Context, payment models.Payment) (models.InsertResult, error)
}

// PaymentIntentProvider creates card payment intents and returns the client secret.
type PaymentIntentProvider interface {
	CreateCardIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// PaymentController handles payment intents and payment records
type PaymentController struct {
	Payments PaymentStore
	Orders   OrderStore
	Provider PaymentIntentProvider
	Notifier utils.Notifier
}

func NewPaymentController(payments PaymentStore, orders OrderStore, provider PaymentIntentProvider, notifier utils.Notifier) *PaymentController {
	if notifier == nil {
		notifier = utils.NoopNotifier{}
	}
	return &PaymentController{
		Payments: payments,
		Orders:   orders,
		Provider: provider,
		Notifier: notifier,
	}
}

// CreatePaymentIntent handles POST /create-payment-intent. The price is charged in cents.
func (pc *PaymentController) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentIntentRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	secret, err := pc.Provider.CreateCardIntent(ctx, req.Price.MinorUnits(), utils.PaymentIntentCurrency)
	if err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, models.PaymentIntentResponse{ClientSecret: secret})
}

// RecordPayment handles POST /payment: it stores the payment and marks the referenced
// order paid with the transaction id. The two writes are independent; once the payment is
// stored its insert result is returned even if the order update fails.
func (pc *PaymentController) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var payment models.Payment
	if err := decodeJSON(r, &payment); err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	result, err := pc.Payments.Create(ctx, payment)
	if err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}

	order, err := pc.Orders.ApplyPayment(ctx, payment.OrderID, payment.TransactionID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		log.Printf("payment %s recorded for unknown order %s", payment.TransactionID, payment.OrderID)
	case err != nil:
		log.Printf("payment %s recorded but order %s not updated: %v", payment.TransactionID, payment.OrderID, err)
	default:
		go func(order models.Order, payment models.Payment) {
			if err := pc.Notifier.SendPaymentReceipt(order, payment); err != nil {
				log.Printf("Failed to send payment receipt to %s: %v", order.CustomerEmail, err)
			}
		}(*order, payment)
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}
