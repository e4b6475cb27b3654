package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/storefront-pos/internal/domain/entity"
	"github.com/sangkips/storefront-pos/internal/domain/repository"
	"github.com/sangkips/storefront-pos/internal/presentation/http/dto/response"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a signed-in client repeats
// a request with the same Idempotency-Key, so a retried checkout never
// records a second sale. The key is claimed before the handler runs; a
// retry that arrives while the first request is still running gets 409.
// Only successful responses are kept, failures release the key.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}

		userID, ok := c.Get(ContextUserID)
		if !ok {
			c.Next()
			return
		}
		uid, ok := userID.(uuid.UUID)
		if !ok || uid == uuid.Nil {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.BadRequest(c, "Failed to read request body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		sum := sha256.Sum256(body)

		claim := &entity.IdempotencyKey{
			Key:         idempotencyKey,
			UserID:      uid,
			Endpoint:    c.Request.Method + " " + c.FullPath(),
			RequestHash: hex.EncodeToString(sum[:]),
			ExpiresAt:   time.Now().Add(IdempotencyKeyTTL),
		}
		held, reserved, err := config.Repo.Reserve(c.Request.Context(), claim)
		if err != nil {
			log.Printf("[idempotency] reserve failed: %v", err)
			c.Next()
			return
		}

		if !reserved {
			switch {
			case held.RequestHash != claim.RequestHash:
				response.ErrorWithCode(c, http.StatusUnprocessableEntity, "Idempotency-Key was already used with a different request")
			case !held.Completed():
				c.Header("Retry-After", "1")
				response.ErrorWithCode(c, http.StatusConflict, "A request with this Idempotency-Key is still in progress")
			default:
				c.Header("X-Idempotency-Replayed", "true")
				c.Data(held.ResponseCode, "application/json; charset=utf-8", []byte(held.ResponseBody))
			}
			c.Abort()
			return
		}

		blw := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// the sale is already committed, so record it even if the client left
		ctx := context.WithoutCancel(c.Request.Context())
		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			if err := config.Repo.Complete(ctx, claim.ID, status, blw.body.String()); err != nil {
				log.Printf("[idempotency] failed to store response: %v", err)
			}
			return
		}
		if err := config.Repo.Release(ctx, claim.ID); err != nil {
			log.Printf("[idempotency] failed to release key: %v", err)
		}
	}
}
