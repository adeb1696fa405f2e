package controllers

import (
	"context"
	"errors"
	"net/http"

	"motohub/models"
	"motohub/repository"
	"motohub/utils"

	"github.com/gorilla/mux"
)

type WishlistStore interface {
	Create(ctx context.Context, item models.WishlistItem) (models.InsertResult, error)
	Delete(ctx context.Context, id string) (models.DeleteResult, error)
	Find(ctx context.Context, owner, email, productID string) ([]models.WishlistItem, error)
}

// WishlistController handles wishlist requests
type WishlistController struct {
	Wishlist WishlistStore
}

func NewWishlistController(wishlist WishlistStore) *WishlistController {
	return &WishlistController{Wishlist: wishlist}
}

// AddToWishlist handles POST /wishlist
func (wc *WishlistController) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	var item models.WishlistItem
	if err := decodeJSON(r, &item); err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	result, err := wc.Wishlist.Create(ctx, item)
	if errors.Is(err, repository.ErrDuplicate) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Already Added")
		return
	}
	if err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// RemoveFromWishlist handles POST /wishlist/delete/{id}
func (wc *WishlistController) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := validateObjectID("wishlist id", id); err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	result, err := wc.Wishlist.Delete(ctx, id)
	if err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// GetWishlist handles GET /wishlist?email=&id= where id is a product id.
func (wc *WishlistController) GetWishlist(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	productID := r.URL.Query().Get("id")
	if err := requireOwnEmail(r, email); err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	items, err := wc.Wishlist.Find(ctx, requestOwner(r), email, productID)
	if err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, items)
}
