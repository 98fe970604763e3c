// Package session owns the client's authentication state: the current user
// record, the persisted credentials, and the token lifecycle. It is the sole
// writer of the storage slots and the sole owner of the refresh-on-401
// interceptor hook.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/akimovd/wastepoint/internal/client/api"
	"github.com/akimovd/wastepoint/internal/client/models"
	"github.com/akimovd/wastepoint/internal/client/store"
	"github.com/akimovd/wastepoint/internal/common"
	"github.com/akimovd/wastepoint/internal/logging"
	"golang.org/x/sync/singleflight"
)

// Snapshot is an immutable copy of the session state. Authenticated is true
// only when a user record is present and credentials have been persisted.
type Snapshot struct {
	User          *models.UserRecord
	Authenticated bool
	Loading       bool
	LastError     string
}

// Manager is the session state holder. Construct with NewManager, then call
// Bind once at bootstrap and Restore to pick up a persisted session.
type Manager struct {
	client   api.Client
	store    *store.Store
	notifier Notifier
	log      logging.Logger

	// One in-flight refresh at a time; concurrent callers share the result.
	sf singleflight.Group

	mu            sync.Mutex
	user          *models.UserRecord
	authenticated bool
	loading       bool
	lastError     string
	listeners     map[int]func(Snapshot)
	nextListener  int
}

func NewManager(client api.Client, st *store.Store, notifier Notifier, log logging.Logger) *Manager {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Manager{
		client:    client,
		store:     st,
		notifier:  notifier,
		log:       log,
		listeners: make(map[int]func(Snapshot)),
	}
}

// Bind installs the transparent refresh-on-401 hook on the API client.
// Call Close to tear it down.
func (m *Manager) Bind() {
	m.client.SetUnauthorizedRetry(func(ctx context.Context) (string, error) {
		return m.RefreshToken(ctx)
	})
}

// Close removes the interceptor hook installed by Bind.
func (m *Manager) Close() {
	m.client.SetUnauthorizedRetry(nil)
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	snap := Snapshot{
		Authenticated: m.authenticated,
		Loading:       m.loading,
		LastError:     m.lastError,
	}
	if m.user != nil {
		u := *m.user
		snap.User = &u
	}
	return snap
}

// Subscribe registers fn to be called after every state change, and once
// immediately with the current state. The returned function unsubscribes.
func (m *Manager) Subscribe(fn func(Snapshot)) func() {
	m.mu.Lock()
	id := m.nextListener
	m.nextListener++
	m.listeners[id] = fn
	snap := m.snapshotLocked()
	m.mu.Unlock()

	fn(snap)

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

func (m *Manager) emitLocked() (Snapshot, []func(Snapshot)) {
	snap := m.snapshotLocked()
	fns := make([]func(Snapshot), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	return snap, fns
}

func (m *Manager) mutate(apply func()) {
	m.mu.Lock()
	apply()
	snap, fns := m.emitLocked()
	m.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func (m *Manager) setLoading(v bool) {
	m.mutate(func() { m.loading = v })
}

func (m *Manager) setError(msg string) {
	m.mutate(func() { m.lastError = msg })
}

// saveAuthData persists credentials first, then flips the in-memory flags, so
// any observer of authenticated=true can rely on storage being populated.
func (m *Manager) saveAuthData(ctx context.Context, user models.UserRecord, token string) {
	m.store.SetItem(ctx, store.SlotUser, user)
	m.store.SetItem(ctx, store.SlotAccessToken, token)
	m.client.SetAccessToken(token)

	m.mutate(func() {
		u := user
		m.user = &u
		m.authenticated = true
	})
}

// clearAuthData removes both storage slots and resets the in-memory state.
func (m *Manager) clearAuthData(ctx context.Context) {
	m.store.RemoveItem(ctx, store.SlotUser)
	m.store.RemoveItem(ctx, store.SlotAccessToken)
	m.client.SetAccessToken("")

	m.mutate(func() {
		m.user = nil
		m.authenticated = false
	})
}

// Login authenticates against the backend and establishes a session. The
// returned error is also recorded in the last-error state and surfaced as a
// notification, so callers may additionally react to it.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.setLoading(true)
	m.setError("")
	defer m.setLoading(false)

	res, err := m.client.Login(ctx, email, password)
	if err != nil {
		msg := api.ErrorMessage(err, "login failed")
		m.setError(msg)
		m.notifier.Error(msg)
		return err
	}

	m.saveAuthData(ctx, res.User, res.Token)
	m.notifier.Success("Logged in")
	m.log.Info(ctx, "logged in", "email", res.User.Email, "role", res.User.RoleName)
	return nil
}

// Register creates an account via the role-specific endpoint. It never
// authenticates the new account; the user logs in separately. Roles without a
// self-registration endpoint fail before any network call.
func (m *Manager) Register(ctx context.Context, reg models.Registration, roleType models.Role) error {
	m.setLoading(true)
	m.setError("")
	defer m.setLoading(false)

	var err error
	switch roleType {
	case models.RoleHousehold:
		err = m.client.RegisterHousehold(ctx, reg)
	case models.RoleCollector:
		err = m.client.RegisterCollector(ctx, reg)
	case models.RoleAdmin:
		err = m.client.RegisterAdmin(ctx, reg)
	case models.RoleMunicipality, models.RoleMunicipalManager:
		err = fmt.Errorf("%w: %s", common.ErrUnsupportedRole, roleType)
	default:
		err = fmt.Errorf("%w: %q", common.ErrUnsupportedRole, string(roleType))
	}
	if err != nil {
		msg := api.ErrorMessage(err, err.Error())
		m.setError(msg)
		m.notifier.Error(msg)
		return err
	}

	m.notifier.Success("Registration complete, you can log in now")
	return nil
}

// Logout ends the session. The backend call is best-effort: its failure is
// logged and local cleanup proceeds regardless. Logout never fails.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.client.Logout(ctx); err != nil {
		m.log.Warn(ctx, "logout request failed", "error", err)
	}
	m.clearAuthData(ctx)
	m.notifier.Success("Logged out")
}

// RefreshToken obtains a new access token and re-persists it alongside the
// stored user record (the user's identity does not change, only the token).
// Concurrent calls are collapsed into a single backend request. A failed
// refresh ends the session.
func (m *Manager) RefreshToken(ctx context.Context) (string, error) {
	v, err, _ := m.sf.Do("refresh", func() (any, error) {
		token, err := m.client.RefreshToken(ctx)
		if err != nil {
			return "", err
		}

		var user models.UserRecord
		if m.store.GetItemJSON(ctx, store.SlotUser, &user) {
			m.saveAuthData(ctx, user, token)
		} else {
			m.store.SetItem(ctx, store.SlotAccessToken, token)
			m.client.SetAccessToken(token)
		}
		return token, nil
	})
	if err != nil {
		m.clearAuthData(ctx)
		m.setError(common.ErrSessionExpired.Error())
		m.notifier.Error("Session expired, please log in again")
		return "", err
	}
	return v.(string), nil
}

// UpdateProfile pushes the changed fields to the backend and merges the
// response into the current user. A response that omits fields (including the
// role name) never clears them locally.
func (m *Manager) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error {
	m.setLoading(true)
	m.setError("")
	defer m.setLoading(false)

	resp, err := m.client.UpdateProfile(ctx, upd)
	if err != nil {
		msg := api.ErrorMessage(err, "profile update failed")
		m.setError(msg)
		m.notifier.Error(msg)
		return err
	}

	m.mu.Lock()
	current := models.UserRecord{}
	if m.user != nil {
		current = *m.user
	}
	merged := current.Merge(*resp)
	m.mu.Unlock()

	m.store.SetItem(ctx, store.SlotUser, merged)
	m.mutate(func() {
		u := merged
		m.user = &u
	})

	m.notifier.Success("Profile updated")
	return nil
}

// HasRole reports whether the current user has the given role.
func (m *Manager) HasRole(role models.Role) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil && m.user.RoleName == role
}

// ClearError resets the last-error state.
func (m *Manager) ClearError() {
	m.setError("")
}

// Restore picks up a persisted session at startup. When both slots are
// present the stored token is validated against the profile endpoint; an
// invalid or expired session is fully cleared with a notification. A missing
// slot is the normal logged-out startup path and clears silently. Idempotent.
func (m *Manager) Restore(ctx context.Context) {
	m.setLoading(true)
	defer m.setLoading(false)

	token, okToken := m.store.GetItem(ctx, store.SlotAccessToken)
	var persisted models.UserRecord
	okUser := m.store.GetItemJSON(ctx, store.SlotUser, &persisted)

	if !okToken || !okUser {
		m.clearAuthData(ctx)
		return
	}

	m.client.SetAccessToken(token)

	profile, err := m.client.CurrentProfile(ctx)
	if err != nil {
		m.log.Info(ctx, "stored session is no longer valid", "error", err)
		m.clearAuthData(ctx)
		m.setError(common.ErrSessionExpired.Error())
		m.notifier.Error("Session expired, please log in again")
		return
	}

	m.saveAuthData(ctx, *profile, token)
	m.log.Info(ctx, "session restored", "email", profile.Email, "role", profile.RoleName)
}
