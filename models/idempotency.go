package models

import "time"

// IdempotencyRecord remembers the first response produced for an Idempotency-Key.
type IdempotencyRecord struct {
	Key         string          `bson:"key"`
	Method      string          `bson:"method"`
	Path        string          `bson:"path"`
	RequestHash string          `bson:"request_hash"`
	Response    *StoredResponse `bson:"response,omitempty"`
	CreatedAt   time.Time       `bson:"created_at"`
	ExpiresAt   time.Time       `bson:"expires_at"`
}

type StoredResponse struct {
	Status      int    `bson:"status"`
	ContentType string `bson:"content_type"`
	Body        []byte `bson:"body"`
}
