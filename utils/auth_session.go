// File: tiffinpro/utils/auth_session.go
package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const SessionPrefix = "session:"

// SessionRecord is what the auth cache stores per issued session token,
// keyed by the token's SHA-256 hash. Deleting the record revokes the token.
type SessionRecord struct {
	UID       string    `json:"uid"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SaveSessionRecord stores a session record under the token hash with a TTL.
func SaveSessionRecord(ctx context.Context, client *redis.Client, tokenHash string, record SessionRecord, ttl time.Duration) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}
	if err := client.Set(ctx, SessionPrefix+tokenHash, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session record: %w", err)
	}
	return nil
}

// GetSessionRecord retrieves the session record for a token hash. Returns
// (nil, nil) when the session is unknown or revoked.
func GetSessionRecord(ctx context.Context, client *redis.Client, tokenHash string) (*SessionRecord, error) {
	data, err := client.Get(ctx, SessionPrefix+tokenHash).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session record: %w", err)
	}
	var record SessionRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session record: %w", err)
	}
	return &record, nil
}

// DeleteSessionRecord revokes a session.
func DeleteSessionRecord(ctx context.Context, client *redis.Client, tokenHash string) error {
	return client.Del(ctx, SessionPrefix+tokenHash).Err()
}
