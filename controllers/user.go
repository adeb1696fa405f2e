// controllers/user.go
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

// UserStore is the account persistence the controller needs.
type UserStore interface {
	Create(ctx context.Context, user models.User) (models.InsertResult, bool, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ListByRole(ctx context.Context, role string) ([]models.User, error)
	Delete(ctx context.Context, id string) (models.DeleteResult, error)
	SetVerify(ctx context.Context, id, verify string) (models.UpdateResult, error)
}

type TokenIssuer interface {
	GenerateJWT(email string) (string, error)
}

// VerifyHeader carries the new verification value on PUT /users/edit/{id}.
const VerifyHeader = "verify"

// UserController handles user-related requests
type UserController struct {
	Users  UserStore
	Tokens TokenIssuer
}

// NewUserController creates a new UserController
func NewUserController(users UserStore, tokens TokenIssuer) *UserController {
	return &UserController{Users: users, Tokens: tokens}
}

// GetToken handles GET /jwt?email=. Unknown emails get an empty token rather than an error.
func (uc *UserController) GetToken(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		utils.RespondWithJSON(w, http.StatusOK, models.AccessToken{})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	_, err := uc.Users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		utils.RespondWithJSON(w, http.StatusOK, models.AccessToken{})
		return
	}
	if err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}

	token, err := uc.Tokens.GenerateJWT(email)
	if err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, models.AccessToken{AccessToken: token})
}

// CreateUser handles POST /users. Registering an existing email is a no-op answered with {}.
func (uc *UserController) CreateUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := decodeJSON(r, &user); err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	result, created, err := uc.Users.Create(ctx, user)
	if err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}
	if !created {
		utils.RespondWithJSON(w, http.StatusOK, struct{}{})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// ListUsersByRole handles GET /users?role=
func (uc *UserController) ListUsersByRole(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	users, err := uc.Users.ListByRole(ctx, r.URL.Query().Get("role"))
	if err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, users)
}

// DeleteUser handles POST /users/delete/{id}
func (uc *UserController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := validateObjectID("user id", id); err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	result, err := uc.Users.Delete(ctx, id)
	if err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// UpdateVerify handles PUT /users/edit/{id} with the new value in the verify header.
func (uc *UserController) UpdateVerify(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := validateObjectID("user id", id); err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}
	verify := r.Header.Get(VerifyHeader)
	if verify == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "verify header is required")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	result, err := uc.Users.SetVerify(ctx, id, verify)
	if err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// GetUserRole handles GET /users/role/{email}. The whole user document is returned, or
// null when nobody has the email.
func (uc *UserController) GetUserRole(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	user, err := uc.Users.FindByEmail(ctx, mux.Vars(r)["email"])
	if errors.Is(err, repository.ErrNotFound) {
		utils.RespondWithJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

// GetVerifyStatus handles GET /users/verify/{email}
func (uc *UserController) GetVerifyStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	user, err := uc.Users.FindByEmail(ctx, mux.Vars(r)["email"])
	if errors.Is(err, repository.ErrNotFound) {
		utils.RespondWithJSON(w, http.StatusOK, models.VerifyStatus{})
		return
	}
	if err != nil {
		utils.RespondWithErr(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, models.VerifyStatus{IsVerify: user.Verify.Verified()})
}

// Health handles GET /
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Server Running"))
}
