package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"employee_project/internal/session"
	"employee_project/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const IdempotencyHeader = "Idempotency-Key"

type Cache interface {
	GetBytes(ctx context.Context, key string) ([]byte, bool)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration)
}

type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, prefix: "idempotency:"}
}

func (c *RedisCache) GetBytes(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	} else if err != nil {
		logger.Logger.Error("Redis get error", zap.Error(err))
		return nil, false
	}
	return val, true
}

func (c *RedisCache) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		logger.Logger.Error("Redis set error", zap.Error(err))
	}
}

type cachedResponse struct {
	RequestHash string `json:"request_hash"`
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

const maxIdempotentBody = 1 << 20

// Idempotency replays the stored response for POST requests that repeat an Idempotency-Key.
// Keys are scoped to the caller's session, and a key reused with a different body is rejected
// with 422. Only successful responses that do not set cookies are stored, so login and logout
// always run. It must be mounted inside the Session middleware.
func Idempotency(cache Cache, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyHeader)
			if key == "" || r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxIdempotentBody))
			if err != nil {
				http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			sum := sha256.Sum256(body)
			requestHash := hex.EncodeToString(sum[:])
			cacheKey := scopedKey(session.FromContext(r.Context()), key)

			if cached, ok := cache.GetBytes(r.Context(), cacheKey); ok {
				var resp cachedResponse
				if err := json.Unmarshal(cached, &resp); err != nil {
					logger.Logger.Error("Failed to decode cached response", zap.String("key", key), zap.Error(err))
				} else if resp.RequestHash != requestHash {
					logger.Logger.Warn("Idempotency key reused with a different body", zap.String("key", key))
					http.Error(w, "Idempotency-Key was already used for a different request", http.StatusUnprocessableEntity)
					return
				} else {
					logger.Logger.Info("Returning cached response", zap.String("key", key))
					w.Header().Set("Content-Type", resp.ContentType)
					w.Header().Set("Idempotent-Replayed", "true")
					w.WriteHeader(resp.Status)
					w.Write(resp.Body)
					return
				}
			}

			rec := newStatusRecorder(w, true)
			next.ServeHTTP(rec, r)
			if rec.status != http.StatusOK || rec.Header().Get("Set-Cookie") != "" {
				return
			}

			data, err := json.Marshal(cachedResponse{
				RequestHash: requestHash,
				Status:      rec.status,
				ContentType: rec.Header().Get("Content-Type"),
				Body:        rec.body.Bytes(),
			})
			if err != nil {
				logger.Logger.Error("Failed to encode response", zap.Error(err))
				return
			}
			cache.SetBytes(r.Context(), cacheKey, data, ttl)
			logger.Logger.Debug("Stored idempotent response", zap.String("key", key))
		})
	}
}

// scopedKey hashes the client key together with the caller so keys never cross sessions.
func scopedKey(rc *session.RequestContext, key string) string {
	owner := "anon"
	if rc.Authenticated() {
		owner = rc.Identity.UserID + "/" + rc.Identity.SessionID
	}
	sum := sha256.Sum256([]byte(owner + "\x00" + key))
	return hex.EncodeToString(sum[:])
}
