// Package userstate is the derived user/permission layer: a reducer-style
// state machine that mirrors the session layer's user record, adds
// role-derived permission resolution, and never talks to the network itself.
package userstate

import (
	"github.com/akimovd/wastepoint/internal/client/models"
)

// ActionType tags the reducer actions.
type ActionType int

const (
	ActionSetUserData ActionType = iota
	ActionSetLoading
	ActionSetError
	ActionLogout
	ActionUpdateProfile
	ActionSetPreferences
	ActionClearError
)

// Action is a tagged variant; only the fields relevant to Type are read.
type Action struct {
	Type        ActionType
	User        *models.UserRecord
	Loading     bool
	Err         string
	Preferences map[string]string
}

// State is the derived layer's state.
type State struct {
	CurrentUser *models.UserRecord
	Preferences map[string]string
	Loading     bool
	LastError   string
}

func initialState() State {
	return State{Preferences: map[string]string{}}
}

// Reduce is the pure transition function. It never mutates its input.
func Reduce(s State, a Action) State {
	switch a.Type {
	case ActionSetUserData:
		s.CurrentUser = a.User
		s.Loading = false
		s.LastError = ""
	case ActionSetLoading:
		s.Loading = a.Loading
	case ActionSetError:
		s.LastError = a.Err
		s.Loading = false
	case ActionLogout:
		return initialState()
	case ActionUpdateProfile:
		if s.CurrentUser != nil && a.User != nil {
			merged := s.CurrentUser.Merge(*a.User)
			s.CurrentUser = &merged
		}
	case ActionSetPreferences:
		prefs := make(map[string]string, len(s.Preferences)+len(a.Preferences))
		for k, v := range s.Preferences {
			prefs[k] = v
		}
		for k, v := range a.Preferences {
			prefs[k] = v
		}
		s.Preferences = prefs
	case ActionClearError:
		s.LastError = ""
	}
	return s
}
