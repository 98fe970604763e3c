// Package guard implements the capability wrapper protecting views behind
// authentication and permission requirements.
package guard

import (
	"context"
	"fmt"
	"io"

	"github.com/akimovd/wastepoint/internal/client/models"
	"github.com/akimovd/wastepoint/internal/client/userstate"
)

// Redirect targets used when access is denied.
const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// Decision is the guard's verdict for a guarded view.
type Decision int

const (
	// DecisionPending: state is still loading; render a placeholder and make
	// no redirect decision yet (avoids a redirect flash).
	DecisionPending Decision = iota

	// DecisionRedirectLogin: caller is not authenticated. The redirect
	// replaces history: the guarded view is not retained for back-navigation.
	DecisionRedirectLogin

	// DecisionRedirectUnauthorized: authenticated but missing at least one
	// required permission.
	DecisionRedirectUnauthorized

	// DecisionAllow: render the target view with its inputs unchanged.
	DecisionAllow
)

// Users is the derived-state surface the guard consults.
// userstate.Store satisfies it.
type Users interface {
	Loading() bool
	CurrentUser() *models.UserRecord
	HasPermission(p userstate.Permission) bool
}

// View is anything the presentation layer can render.
type View interface {
	Name() string
	Render(ctx context.Context, w io.Writer) error
}

type Guard struct {
	users Users
}

func New(users Users) *Guard {
	return &Guard{users: users}
}

// Check resolves access for a view requiring all of the given permissions.
func (g *Guard) Check(required ...userstate.Permission) Decision {
	if g.users.Loading() {
		return DecisionPending
	}
	if g.users.CurrentUser() == nil {
		return DecisionRedirectLogin
	}
	for _, p := range required {
		if !g.users.HasPermission(p) {
			return DecisionRedirectUnauthorized
		}
	}
	return DecisionAllow
}

// Resolve wraps a target view: it returns the view itself when access is
// allowed, and a placeholder or redirect view otherwise.
func (g *Guard) Resolve(v View, required ...userstate.Permission) View {
	switch g.Check(required...) {
	case DecisionPending:
		return loadingView{}
	case DecisionRedirectLogin:
		return RedirectView{Target: LoginPath}
	case DecisionRedirectUnauthorized:
		return RedirectView{Target: UnauthorizedPath}
	default:
		return v
	}
}

type loadingView struct{}

func (loadingView) Name() string { return "loading" }

func (loadingView) Render(ctx context.Context, w io.Writer) error {
	_, err := fmt.Fprintln(w, "Loading...")
	return err
}

// RedirectView stands in for a denied view and names where the caller is
// sent instead.
type RedirectView struct {
	Target string
}

func (v RedirectView) Name() string { return v.Target }

func (v RedirectView) Render(ctx context.Context, w io.Writer) error {
	_, err := fmt.Fprintf(w, "Redirecting to %s\n", v.Target)
	return err
}
