// Package services contains the business logic between handlers and repositories
package services

import (
	"context"
	"errors"
	"time"

	"github.com/bookwise/backend/internal/models"
)

// storeTimeout bounds every store round-trip so a stuck database surfaces
// as a retryable error instead of a hung request.
const storeTimeout = 5 * time.Second

// withStoreTimeout derives a bounded context for a single store call
func withStoreTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, storeTimeout)
}

// mapUnavailable converts deadline expiry into models.ErrUnavailable,
// leaving other errors untouched
func mapUnavailable(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return models.ErrUnavailable
	}
	return err
}
