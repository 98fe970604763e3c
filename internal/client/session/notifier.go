package session

// Notifier delivers transient user-facing notifications. The presentation
// layer provides the implementation; the session layer only decides when a
// notification is due.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// NopNotifier discards all notifications. Useful for tests and headless use.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}
