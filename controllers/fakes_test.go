package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"motohub/middleware"
	"motohub/models"
	"motohub/utils"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

// ---- fakes implementing the controller interfaces ----

type fakeProducts struct {
	CreateFn         func(ctx context.Context, product models.Product) (models.InsertResult, error)
	ListBySellerFn   func(ctx context.Context, email string) ([]models.Product, error)
	ListAdvertisedFn func(ctx context.Context) ([]models.Product, error)
	ListByCategoryFn func(ctx context.Context, category string) ([]models.Product, error)
	DeleteFn         func(ctx context.Context, id string) (models.DeleteResult, error)
	UpdateListingFn  func(ctx context.Context, id string, update models.ProductUpdate) (models.UpdateResult, error)
}

func (f *fakeProducts) Create(ctx context.Context, p models.Product) (models.InsertResult, error) {
	return f.CreateFn(ctx, p)
}
func (f *fakeProducts) ListBySeller(ctx context.Context, email string) ([]models.Product, error) {
	return f.ListBySellerFn(ctx, email)
}
func (f *fakeProducts) ListAdvertised(ctx context.Context) ([]models.Product, error) {
	return f.ListAdvertisedFn(ctx)
}
func (f *fakeProducts) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return f.ListByCategoryFn(ctx, category)
}
func (f *fakeProducts) Delete(ctx context.Context, id string) (models.DeleteResult, error) {
	return f.DeleteFn(ctx, id)
}
func (f *fakeProducts) UpdateListing(ctx context.Context, id string, u models.ProductUpdate) (models.UpdateResult, error) {
	return f.UpdateListingFn(ctx, id, u)
}

type fakeOrders struct {
	CreateFn       func(ctx context.Context, order models.Order) (models.InsertResult, error)
	FindFn         func(ctx context.Context, owner, email, id string) ([]models.Order, error)
	MarkPaidFn     func(ctx context.Context, id string) (models.UpdateResult, error)
	ApplyPaymentFn func(ctx context.Context, id, transactionID string) (*models.Order, error)
}

func (f *fakeOrders) Create(ctx context.Context, o models.Order) (models.InsertResult, error) {
	return f.CreateFn(ctx, o)
}
func (f *fakeOrders) Find(ctx context.Context, owner, email, id string) ([]models.Order, error) {
	return f.FindFn(ctx, owner, email, id)
}
func (f *fakeOrders) MarkPaid(ctx context.Context, id string) (models.UpdateResult, error) {
	return f.MarkPaidFn(ctx, id)
}
func (f *fakeOrders) ApplyPayment(ctx context.Context, id, transactionID string) (*models.Order, error) {
	return f.ApplyPaymentFn(ctx, id, transactionID)
}

type fakeWishlist struct {
	CreateFn func(ctx context.Context, item models.WishlistItem) (models.InsertResult, error)
	DeleteFn func(ctx context.Context, id string) (models.DeleteResult, error)
	FindFn   func(ctx context.Context, owner, email, productID string) ([]models.WishlistItem, error)
}

func (f *fakeWishlist) Create(ctx context.Context, item models.WishlistItem) (models.InsertResult, error) {
	return f.CreateFn(ctx, item)
}
func (f *fakeWishlist) Delete(ctx context.Context, id string) (models.DeleteResult, error) {
	return f.DeleteFn(ctx, id)
}
func (f *fakeWishlist) Find(ctx context.Context, owner, email, productID string) ([]models.WishlistItem, error) {
	return f.FindFn(ctx, owner, email, productID)
}

type fakeUsers struct {
	CreateFn      func(ctx context.Context, user models.User) (models.InsertResult, bool, error)
	FindByEmailFn func(ctx context.Context, email string) (*models.User, error)
	ListByRoleFn  func(ctx context.Context, role string) ([]models.User, error)
	DeleteFn      func(ctx context.Context, id string) (models.DeleteResult, error)
	SetVerifyFn   func(ctx context.Context, id, verify string) (models.UpdateResult, error)
}

func (f *fakeUsers) Create(ctx context.Context, u models.User) (models.InsertResult, bool, error) {
	return f.CreateFn(ctx, u)
}
func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.FindByEmailFn(ctx, email)
}
func (f *fakeUsers) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	return f.ListByRoleFn(ctx, role)
}
func (f *fakeUsers) Delete(ctx context.Context, id string) (models.DeleteResult, error) {
	return f.DeleteFn(ctx, id)
}
func (f *fakeUsers) SetVerify(ctx context.Context, id, verify string) (models.UpdateResult, error) {
	return f.SetVerifyFn(ctx, id, verify)
}

type fakePayments struct {
	CreateFn func(ctx context.Context, payment models.Payment) (models.InsertResult, error)
}

func (f *fakePayments) Create(ctx context.Context, p models.Payment) (models.InsertResult, error) {
	return f.CreateFn(ctx, p)
}

type fakeProvider struct {
	CreateCardIntentFn func(ctx context.Context, amount int64, currency string) (string, error)
}

func (f *fakeProvider) CreateCardIntent(ctx context.Context, amount int64, currency string) (string, error) {
	return f.CreateCardIntentFn(ctx, amount, currency)
}

type fakeTokens struct {
	GenerateJWTFn func(email string) (string, error)
}

func (f *fakeTokens) GenerateJWT(email string) (string, error) { return f.GenerateJWTFn(email) }

type fakeNotifier struct {
	sent chan models.Order
}

func (f *fakeNotifier) SendPaymentReceipt(order models.Order, payment models.Payment) error {
	f.sent <- order
	return nil
}

// ---- request helpers ----

func newRequest(method, target, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withVars(req *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(req, vars)
}

func withClaims(req *http.Request, email string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, &utils.Claims{Email: email})
	return req.WithContext(ctx)
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decodeBody(t, rec, &body)
	return body["error"]
}
