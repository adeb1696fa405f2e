package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"motohub/models"
	"motohub/repository"
	"motohub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokens struct {
	ParseJWTFn func(tokenStr string) (*utils.Claims, error)
}

func (f *fakeTokens) ParseJWT(tokenStr string) (*utils.Claims, error) { return f.ParseJWTFn(tokenStr) }

type fakeUsers struct {
	FindByEmailFn func(ctx context.Context, email string) (*models.User, error)
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.FindByEmailFn(ctx, email)
}

func okHandler(calls *int32) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{"ok": "yes"})
	})
}

func tokensFor(email string) *fakeTokens {
	return &fakeTokens{ParseJWTFn: func(tokenStr string) (*utils.Claims, error) {
		if tokenStr != "good" {
			return nil, utils.ErrInvalidToken
		}
		return &utils.Claims{Email: email}, nil
	}}
}

func TestAuthMiddleware(t *testing.T) {
	var calls int32
	h := AuthMiddleware(tokensFor("rider@moto.io"))(okHandler(&calls))

	for name, header := range map[string]string{
		"missing":   "",
		"no bearer": "good",
		"bad token": "Bearer bad",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/order", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
	assert.EqualValues(t, 0, calls)

	var seen string
	h = AuthMiddleware(tokensFor("rider@moto.io"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		seen = claims.Email
	}))
	req := httptest.NewRequest(http.MethodGet, "/order", nil)
	req.Header.Set("Authorization", "Bearer good")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "rider@moto.io", seen)
}

func TestRequireRole(t *testing.T) {
	users := &fakeUsers{FindByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
		if _, ok := ctx.Deadline(); !ok {
			return nil, errors.New("lookup without deadline")
		}
		switch email {
		case "admin@moto.io":
			return &models.User{Email: email, Role: models.RoleAdmin}, nil
		case "seller@moto.io":
			return &models.User{Email: email, Role: models.RoleSeller}, nil
		case "down@moto.io":
			return nil, errors.New("server selection timeout")
		}
		return nil, repository.ErrNotFound
	}}

	cases := []struct {
		email  string
		status int
	}{
		{"admin@moto.io", http.StatusOK},
		{"seller@moto.io", http.StatusForbidden},
		{"ghost@moto.io", http.StatusForbidden},
		{"down@moto.io", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		var calls int32
		h := AuthMiddleware(tokensFor(tc.email))(RequireRole(users, models.RoleAdmin)(okHandler(&calls)))
		req := httptest.NewRequest(http.MethodGet, "/users?role=seller", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, tc.status, rec.Code, tc.email)
	}

	// without AuthMiddleware in front there are no claims
	rec := httptest.NewRecorder()
	var calls int32
	RequireRole(users, models.RoleAdmin)(okHandler(&calls)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	var calls int32
	h := NewRateLimiter(1, 2).Limit(okHandler(&calls))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "other clients keep their own budget")
}

func TestRateLimiterEvictsIdleClientsOnly(t *testing.T) {
	clock := time.Now()
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return clock }
	rl.lastSweep = clock

	active := rl.getLimiter("10.0.0.1")
	rl.getLimiter("10.0.0.2")

	for i := 0; i < 3; i++ {
		clock = clock.Add(4 * time.Minute)
		assert.Same(t, active, rl.getLimiter("10.0.0.1"), "active client keeps its bucket")
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Contains(t, rl.visitors, "10.0.0.1")
	assert.NotContains(t, rl.visitors, "10.0.0.2")
}

func TestLoggingSetsRequestID(t *testing.T) {
	var calls int32
	h := SecurityHeaders(Logging(okHandler(&calls)))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))
}

// memoryIdempotencyStore keeps reservations in a map.
type memoryIdempotencyStore struct {
	records     map[string]*models.IdempotencyRecord
	noDeadlines int
}

func (m *memoryIdempotencyStore) checkDeadline(ctx context.Context) {
	if _, ok := ctx.Deadline(); !ok {
		m.noDeadlines++
	}
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{records: map[string]*models.IdempotencyRecord{}}
}

func (m *memoryIdempotencyStore) Reserve(ctx context.Context, rec models.IdempotencyRecord) error {
	m.checkDeadline(ctx)
	if _, ok := m.records[rec.Key]; ok {
		return repository.ErrDuplicate
	}
	m.records[rec.Key] = &rec
	return nil
}

func (m *memoryIdempotencyStore) Get(ctx context.Context, key string) (*models.IdempotencyRecord, error) {
	m.checkDeadline(ctx)
	rec, ok := m.records[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return rec, nil
}

func (m *memoryIdempotencyStore) SaveResponse(ctx context.Context, key string, resp models.StoredResponse) error {
	m.checkDeadline(ctx)
	m.records[key].Response = &resp
	return nil
}

func (m *memoryIdempotencyStore) Release(ctx context.Context, key string) error {
	m.checkDeadline(ctx)
	delete(m.records, key)
	return nil
}

func idempotentPost(h http.Handler, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(body))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	var calls int32
	store := newMemoryIdempotencyStore()
	h := Idempotency(store)(okHandler(&calls))

	first := idempotentPost(h, "k1", `{"product_id":"p1"}`)
	second := idempotentPost(h, "k1", `{"product_id":"p1"}`)

	assert.EqualValues(t, 1, calls)
	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))
	assert.Equal(t, "application/json", second.Header().Get("Content-Type"))
	assert.Zero(t, store.noDeadlines, "store calls must carry a deadline")
}

func TestIdempotencyReleasesKeyAfterServerError(t *testing.T) {
	store := newMemoryIdempotencyStore()
	var calls int32
	failing := true
	h := Idempotency(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if failing {
			utils.RespondWithError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{"ok": "yes"})
	}))

	first := idempotentPost(h, "k1", `{"product_id":"p1"}`)
	assert.Equal(t, http.StatusInternalServerError, first.Code)
	assert.NotContains(t, store.records, "k1")

	failing = false
	retry := idempotentPost(h, "k1", `{"product_id":"p1"}`)
	assert.Equal(t, http.StatusOK, retry.Code)
	assert.Empty(t, retry.Header().Get("Idempotent-Replayed"))
	assert.EqualValues(t, 2, calls)
	assert.Zero(t, store.noDeadlines)
}

func TestIdempotencyConflicts(t *testing.T) {
	store := newMemoryIdempotencyStore()
	var calls int32
	h := Idempotency(store)(okHandler(&calls))

	idempotentPost(h, "k1", `{"product_id":"p1"}`)
	rec := idempotentPost(h, "k1", `{"product_id":"p2"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// reserved but not finished
	req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(`{}`))
	require.NoError(t, store.Reserve(context.Background(), models.IdempotencyRecord{
		Key:         "k2",
		RequestHash: computeRequestHash(req, []byte(`{}`), ""),
	}))
	rec = idempotentPost(h, "k2", `{}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.EqualValues(t, 1, calls)
}

func TestIdempotencyWithoutKeyPassesThrough(t *testing.T) {
	var calls int32
	h := Idempotency(newMemoryIdempotencyStore())(okHandler(&calls))

	idempotentPost(h, "", `{}`)
	idempotentPost(h, "", `{}`)
	assert.EqualValues(t, 2, calls)
}
