// Package api implements the WastePoint backend client. The HTTP
// implementation owns bearer-token attachment, transient-error retry, and the
// transparent refresh-on-401 interceptor; everything above it talks to the
// Client interface only.
package api

import (
	"context"

	"github.com/akimovd/wastepoint/internal/client/models"
)

// LoginResult is the successful login payload.
type LoginResult struct {
	Token string            `json:"token"`
	User  models.UserRecord `json:"user"`
}

// RefreshHook is installed by the session layer. It must return a fresh
// access token or the error that ended the session.
type RefreshHook func(ctx context.Context) (string, error)

// Client is the backend contract consumed by the session layer.
//
// All methods honor context cancellation. Methods return errors matching the
// common package sentinels via errors.Is where a category applies.
type Client interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	RegisterHousehold(ctx context.Context, reg models.Registration) error
	RegisterCollector(ctx context.Context, reg models.Registration) error
	RegisterAdmin(ctx context.Context, reg models.Registration) error
	Logout(ctx context.Context) error
	RefreshToken(ctx context.Context) (string, error)
	CurrentProfile(ctx context.Context) (*models.UserRecord, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.UserRecord, error)
	Ping(ctx context.Context) error

	// SetAccessToken registers (or, with "", clears) the bearer credential
	// attached to subsequent requests.
	SetAccessToken(token string)

	// SetUnauthorizedRetry installs the hook driving the refresh-on-401
	// interceptor. Passing nil tears the interceptor down.
	SetUnauthorizedRetry(hook RefreshHook)

	Close() error
}
