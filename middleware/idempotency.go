package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"motohub/models"
	"motohub/repository"
	"motohub/utils"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	idempotencyTTL       = 24 * time.Hour
	maxIdempotentBody    = 1 << 20
)

// IdempotencyStore persists Idempotency-Key reservations.
type IdempotencyStore interface {
	Reserve(ctx context.Context, rec models.IdempotencyRecord) error
	Get(ctx context.Context, key string) (*models.IdempotencyRecord, error)
	SaveResponse(ctx context.Context, key string, resp models.StoredResponse) error
	Release(ctx context.Context, key string) error
}

// StoreTimeout bounds the store lookups made by middlewares.
var StoreTimeout = 5 * time.Second

func storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, StoreTimeout)
}

func computeRequestHash(r *http.Request, body []byte, subject string) string {
	h := sha256.New()
	h.Write([]byte(r.Method + ":" + r.URL.Path + ":" + subject + ":"))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// captureWriter forwards the response and keeps a copy of status and body.
type captureWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	buf         bytes.Buffer
}

func (c *captureWriter) WriteHeader(code int) {
	if !c.wroteHeader {
		c.status = code
		c.wroteHeader = true
		c.ResponseWriter.WriteHeader(code)
	}
}

func (c *captureWriter) Write(b []byte) (int, error) {
	if !c.wroteHeader {
		c.WriteHeader(http.StatusOK)
	}
	c.buf.Write(b)
	return c.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a client retries a mutating request with the
// same Idempotency-Key. Without the header the request passes through.
//   - first use of a key: the handler runs and its response is stored
//   - same key, same request: the stored response is returned
//   - same key, different request: 409
//   - same key while the first request is still running: 409
//
// Server errors are not stored; the key is released so the client can retry.
func Idempotency(store IdempotencyStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyKeyHeader)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(io.LimitReader(r.Body, maxIdempotentBody))
			if err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, "failed to read request body")
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			var subject string
			if claims, ok := ClaimsFromContext(r.Context()); ok {
				subject = claims.Email
			}
			reqHash := computeRequestHash(r, body, subject)

			now := time.Now()
			rec := models.IdempotencyRecord{
				Key:         key,
				Method:      r.Method,
				Path:        r.URL.Path,
				RequestHash: reqHash,
				CreatedAt:   now,
				ExpiresAt:   now.Add(idempotencyTTL),
			}

			ctx, cancel := storeContext(r.Context())
			err = store.Reserve(ctx, rec)
			cancel()
			if err == nil {
				cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
				next.ServeHTTP(cw, r)
				finish(r.Context(), store, key, cw)
				return
			}

			if !errors.Is(err, repository.ErrDuplicate) {
				utils.RespondWithErr(w, r, err)
				return
			}

			ctx, cancel = storeContext(r.Context())
			existing, err := store.Get(ctx, key)
			cancel()
			if err != nil {
				utils.RespondWithErr(w, r, err)
				return
			}
			if existing.RequestHash != reqHash {
				utils.RespondWithError(w, http.StatusConflict, "idempotency-key conflict")
				return
			}
			if existing.Response == nil {
				utils.RespondWithError(w, http.StatusConflict, "request with this idempotency-key is in progress")
				return
			}

			if existing.Response.ContentType != "" {
				w.Header().Set("Content-Type", existing.Response.ContentType)
			}
			w.Header().Set("Idempotent-Replayed", "true")
			w.WriteHeader(existing.Response.Status)
			_, _ = w.Write(existing.Response.Body)
		})
	}
}

// finish stores the captured response, or releases the key after a server error. The client
// already has its response, so failures here are only logged.
func finish(parent context.Context, store IdempotencyStore, key string, cw *captureWriter) {
	ctx, cancel := storeContext(context.WithoutCancel(parent))
	defer cancel()

	if cw.status >= http.StatusInternalServerError {
		if err := store.Release(ctx, key); err != nil {
			log.Printf("idempotency: release key %q: %v", key, err)
		}
		return
	}

	resp := models.StoredResponse{
		Status:      cw.status,
		ContentType: cw.Header().Get("Content-Type"),
		Body:        cw.buf.Bytes(),
	}
	if err := store.SaveResponse(ctx, key, resp); err != nil {
		log.Printf("idempotency: save response for key %q: %v", key, err)
	}
}
