// controllers/order.go
package controllers

import (
	"context"
	"errors"
	"net/http"

	"motohub/middleware"
	"motohub/models"
	"motohub/repository"
	"motohub/utils"
)

// OrderStore is the order persistence the controllers need.
type OrderStore interface {
	Create(ctx context.Context, order models.Order) (models.InsertResult, error)
	Find(ctx context.Context, owner, email, id string) ([]models.Order, error)
	MarkPaid(ctx context.Context, id string) (models.UpdateResult, error)
	ApplyPayment(ctx context.Context, id, transactionID string) (*models.Order, error)
}

// OrderController handles order-related requests
type OrderController struct {
	Orders OrderStore
}

// NewOrderController creates a new OrderController
func NewOrderController(orders OrderStore) *OrderController {
	return &OrderController{Orders: orders}
}

// CreateOrder handles POST /order. A second order for the same product and customer is
// rejected with 401 and {"error": "Already ordered"}.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var order models.Order
	if err := decodeJSON(r, &order); err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	result, err := oc.Orders.Create(ctx, order)
	if errors.Is(err, repository.ErrDuplicate) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Already ordered")
		return
	}
	if err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// GetOrders handles GET /order?email=&id= and returns the orders matching either.
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	id := r.URL.Query().Get("id")

	if err := requireOwnEmail(r, email); err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}
	if id != "" {
		if err := validateObjectID("order id", id); err != nil {
			utils.RespondWithErr(w, r, err)
			return
		}
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	orders, err := oc.Orders.Find(ctx, requestOwner(r), email, id)
	if err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, orders)
}

// requestOwner is the authenticated customer, or "" for unauthenticated requests.
func requestOwner(r *http.Request) string {
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		return claims.Email
	}
	return ""
}

// requireOwnEmail rejects queries for another customer's records when the request is
// authenticated.
func requireOwnEmail(r *http.Request, email string) error {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok || email == "" || claims.Email == email {
		return nil
	}
	return utils.NewHTTPError(http.StatusForbidden, "forbidden access", nil)
}
