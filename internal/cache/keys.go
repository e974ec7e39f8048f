package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userKeyPrefix      = "user:%d"
	blacklistKeyPrefix = "blacklist:%s"
)

// UserTTL bounds how stale a cached user record may get.
const UserTTL = 5 * time.Minute

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

func blacklistKey(jti string) string {
	return fmt.Sprintf(blacklistKeyPrefix, jti)
}

// RevokeToken blacklists a token ID until its natural expiry. Without Redis
// revocation is unavailable and the call reports that to the caller.
func RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if client == nil {
		return fmt.Errorf("token revocation unavailable: no redis client")
	}
	if ttl <= 0 {
		// Already expired, nothing to revoke.
		return nil
	}
	return client.Set(ctx, blacklistKey(jti), "1", ttl).Err()
}

// IsTokenRevoked reports whether a token ID has been blacklisted. Errors and
// the no-Redis case read as "not revoked"; token expiry still applies.
func IsTokenRevoked(ctx context.Context, jti string) bool {
	if client == nil || jti == "" {
		return false
	}
	n, err := client.Exists(ctx, blacklistKey(jti)).Result()
	return err == nil && n > 0
}
