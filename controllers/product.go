package controllers

import (
	"context"
	"net/http"

	"motohub/models"
	"motohub/utils"

	"github.com/gorilla/mux"
)

// ProductStore is the product persistence the controller needs.
type ProductStore interface {
	Create(ctx context.Context, product models.Product) (models.InsertResult, error)
	ListBySeller(ctx context.Context, email string) ([]models.Product, error)
	ListAdvertised(ctx context.Context) ([]models.Product, error)
	ListByCategory(ctx context.Context, category string) ([]models.Product, error)
	Delete(ctx context.Context, id string) (models.DeleteResult, error)
	UpdateListing(ctx context.Context, id string, update models.ProductUpdate) (models.UpdateResult, error)
}

// OrderPaidMarker flips an order's paid flag.
type OrderPaidMarker interface {
	MarkPaid(ctx context.Context, id string) (models.UpdateResult, error)
}

// OrderIDHeader carries the order paid for by an advertise update.
const OrderIDHeader = "id"

// ProductController handles product-related requests
type ProductController struct {
	Products ProductStore
	Orders   OrderPaidMarker
}

// NewProductController creates a new ProductController
func NewProductController(products ProductStore, orders OrderPaidMarker) *ProductController {
	return &ProductController{Products: products, Orders: orders}
}

// CreateProduct handles POST /add-product
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := decodeJSON(r, &product); err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	result, err := pc.Products.Create(ctx, product)
	if err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// GetProductsBySeller handles GET /products/{email}
func (pc *ProductController) GetProductsBySeller(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	products, err := pc.Products.ListBySeller(ctx, mux.Vars(r)["email"])
	if err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, products)
}

// DeleteProduct handles POST /product/delete/{id}
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := validateObjectID("product id", id); err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	result, err := pc.Products.Delete(ctx, id)
	if err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// UpdateProduct handles PUT /product/edit/{id}. When the "id" header names an order, that
// order is marked paid as well; the response is the product update result.
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]
	if err := validateObjectID("product id", productID); err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}
	orderID := r.Header.Get(OrderIDHeader)
	if orderID != "" {
		if err := validateObjectID("order id", orderID); err != nil {
			utils.RespondWithErr(w, r, err)
			return
		}
	}

	var update models.ProductUpdate
	if err := decodeJSON(r, &update); err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	result, err := pc.Products.UpdateListing(ctx, productID, update)
	if err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}

	if orderID != "" {
		if _, err := pc.Orders.MarkPaid(ctx, orderID); err != nil {
			utils.RespondWithErr(w, r, err)
			return
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// GetAdvertisedProducts handles GET /products
func (pc *ProductController) GetAdvertisedProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	products, err := pc.Products.ListAdvertised(ctx)
	if err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, products)
}

// GetProductsByCategory handles GET /products/category/{id}
func (pc *ProductController) GetProductsByCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	products, err := pc.Products.ListByCategory(ctx, mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, products)
}
