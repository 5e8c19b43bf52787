package idempotency

import (
	"context"
	"time"

	"github.com/recipeasy/recipeasy-api/internal/domain"
)

// Key is the caller-provided idempotency key (Idempotency-Key header).
type Key string

// Fingerprint identifies a mutating request for replay purposes.
//
// Route is the HTTP method plus route template (e.g. "POST /favorites").
// BodyHash is empty for the per-key marker record that pins a key to one body.
type Fingerprint struct {
	Key      Key
	Subject  domain.SubjectID
	Route    string
	BodyHash string
}

// Record is the stored response replayed for a duplicate request.
type Record struct {
	StatusCode  int
	ContentType string
	Body        []byte
	CreatedAt   time.Time
}

// Store persists idempotency records.
type Store interface {
	Get(ctx context.Context, fp Fingerprint) (Record, bool, error)
	Put(ctx context.Context, fp Fingerprint, rec Record) error
}
