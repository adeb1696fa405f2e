package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"motohub/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{NewHTTPError(http.StatusUnauthorized, "Already ordered", nil), http.StatusUnauthorized},
		{fmt.Errorf("delete: %w", repository.ErrInvalidID), http.StatusBadRequest},
		{fmt.Errorf("find: %w", repository.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("insert: %w", repository.ErrDuplicate), http.StatusConflict},
		{fmt.Errorf("%w: expired", ErrInvalidToken), http.StatusUnauthorized},
		{fmt.Errorf("%w: card declined", ErrPaymentProvider), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		status, _ := StatusFor(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
	}
}

func TestRespondWithErrHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/order", nil)

	RespondWithErr(rec, req, errors.New("connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body["error"])
}
