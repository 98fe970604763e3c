package userstate

import (
	"sync"

	"github.com/akimovd/wastepoint/internal/client/models"
	"github.com/akimovd/wastepoint/internal/client/session"
)

// Source is the upstream session feed. session.Manager satisfies it.
type Source interface {
	Subscribe(fn func(session.Snapshot)) func()
}

// Store holds the derived state and keeps it eventually consistent with the
// session layer: once the upstream finishes loading, an authenticated
// snapshot dispatches SetUserData and anything else dispatches Logout.
type Store struct {
	mu              sync.Mutex
	state           State
	upstreamLoading bool
	unsubscribe     func()
}

func New(src Source) *Store {
	s := &Store{state: initialState()}
	s.unsubscribe = src.Subscribe(s.sync)
	return s
}

func (s *Store) sync(snap session.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.upstreamLoading = snap.Loading
	if snap.Loading {
		return
	}
	if snap.Authenticated && snap.User != nil {
		s.state = Reduce(s.state, Action{Type: ActionSetUserData, User: snap.User})
	} else {
		s.state = Reduce(s.state, Action{Type: ActionLogout})
	}
}

// Dispatch applies an action to the local state.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
}

// State returns a copy of the current derived state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentUser returns the mirrored user record, or nil when logged out.
func (s *Store) CurrentUser() *models.UserRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CurrentUser
}

// Loading combines the upstream and local loading flags, so guards never
// reveal content mid-transition.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upstreamLoading || s.state.Loading
}

// HasPermission resolves p against the current user's role. False without a
// user or role.
func (s *Store) HasPermission(p Permission) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentUser == nil || s.state.CurrentUser.RoleName == "" {
		return false
	}
	return RoleAllows(s.state.CurrentUser.RoleName, p)
}

// Close detaches the store from its upstream source.
func (s *Store) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}
