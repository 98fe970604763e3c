package session

import (
	"context"
	"time"

	"github.com/akimovd/wastepoint/internal/client/store"
	"github.com/golang-jwt/jwt/v5"
)

// StartTokenWatcher periodically inspects the stored access token and
// refreshes it before it expires, so interactive flows rarely hit the
// reactive 401 path. Blocks until ctx is done; run it in a goroutine.
func (m *Manager) StartTokenWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !m.Snapshot().Authenticated {
				continue
			}
			token, ok := m.store.GetItem(ctx, store.SlotAccessToken)
			if !ok || !tokenExpiresWithin(token, 2*interval) {
				continue
			}

			rctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if _, err := m.RefreshToken(rctx); err != nil {
				m.log.Warn(ctx, "proactive token refresh failed", "error", err)
			}
			cancel()

		case <-ctx.Done():
			return
		}
	}
}

// tokenExpiresWithin inspects the token's exp claim without verifying the
// signature (the client has no key; the backend remains the authority).
// Tokens that do not parse or carry no expiry are left to the 401 path.
func tokenExpiresWithin(token string, d time.Duration) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return time.Until(claims.ExpiresAt.Time) < d
}
