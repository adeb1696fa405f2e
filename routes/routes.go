// routes/routes.go
package routes

import (
	"net/http"

	"motohub/controllers"
	"motohub/middleware"
	"motohub/models"

	"github.com/gorilla/mux"
)

// Controllers groups the handlers served by the router.
type Controllers struct {
	Users    *controllers.UserController
	Products *controllers.ProductController
	Orders   *controllers.OrderController
	Wishlist *controllers.WishlistController
	Payments *controllers.PaymentController
}

// Guards are the middlewares attached to individual routes.
type Guards struct {
	Tokens      middleware.TokenParser
	Users       middleware.UserLookup
	Idempotency middleware.IdempotencyStore
}

type wrapper func(http.Handler) http.Handler

func chain(h http.HandlerFunc, wrappers ...wrapper) http.Handler {
	var handler http.Handler = h
	for i := len(wrappers) - 1; i >= 0; i-- {
		handler = wrappers[i](handler)
	}
	return handler
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, c Controllers, g Guards) {
	auth := wrapper(middleware.AuthMiddleware(g.Tokens))
	admin := wrapper(middleware.RequireRole(g.Users, models.RoleAdmin))
	idem := wrapper(middleware.Idempotency(g.Idempotency))

	router.HandleFunc("/", controllers.Health).Methods(http.MethodGet)

	// Products
	router.HandleFunc("/add-product", c.Products.CreateProduct).Methods(http.MethodPost)
	router.HandleFunc("/products", c.Products.GetAdvertisedProducts).Methods(http.MethodGet)
	router.HandleFunc("/products/category/{id}", c.Products.GetProductsByCategory).Methods(http.MethodGet)
	router.HandleFunc("/products/{email}", c.Products.GetProductsBySeller).Methods(http.MethodGet)
	router.HandleFunc("/product/delete/{id}", c.Products.DeleteProduct).Methods(http.MethodPost)
	router.HandleFunc("/product/edit/{id}", c.Products.UpdateProduct).Methods(http.MethodPut)

	// Orders
	router.Handle("/order", chain(c.Orders.CreateOrder, idem)).Methods(http.MethodPost)
	router.Handle("/order", chain(c.Orders.GetOrders, auth)).Methods(http.MethodGet)

	// Wishlist
	router.Handle("/wishlist", chain(c.Wishlist.AddToWishlist, idem)).Methods(http.MethodPost)
	router.Handle("/wishlist", chain(c.Wishlist.GetWishlist, auth)).Methods(http.MethodGet)
	router.HandleFunc("/wishlist/delete/{id}", c.Wishlist.RemoveFromWishlist).Methods(http.MethodPost)

	// Payments
	router.Handle("/create-payment-intent", chain(c.Payments.CreatePaymentIntent, auth, idem)).Methods(http.MethodPost)
	router.Handle("/payment", chain(c.Payments.RecordPayment, auth, idem)).Methods(http.MethodPost)

	// Users
	router.HandleFunc("/jwt", c.Users.GetToken).Methods(http.MethodGet)
	router.HandleFunc("/users", c.Users.CreateUser).Methods(http.MethodPost)
	router.HandleFunc("/users/role/{email}", c.Users.GetUserRole).Methods(http.MethodGet)
	router.HandleFunc("/users/verify/{email}", c.Users.GetVerifyStatus).Methods(http.MethodGet)

	// Admin routes
	router.Handle("/users", chain(c.Users.ListUsersByRole, auth, admin)).Methods(http.MethodGet)
	router.Handle("/users/delete/{id}", chain(c.Users.DeleteUser, auth, admin)).Methods(http.MethodPost)
	router.Handle("/users/edit/{id}", chain(c.Users.UpdateVerify, auth, admin)).Methods(http.MethodPut)
}
