package dispatch

import "github.com/avafoundry/ava-cli/internal/sanitize"

// Session is the mutable per-shell state: the active context and the active
// keystore credential. It is owned by the dispatch flow; nothing else
// mutates it.
type Session struct {
	activeContext string
	credential    *sanitize.Credential
}

func NewSession() *Session {
	return &Session{}
}

// ActiveContext returns the current context name, "" when none is active.
func (s *Session) ActiveContext() string {
	return s.activeContext
}

func (s *Session) EnterContext(name string) {
	s.activeContext = name
}

func (s *Session) LeaveContext() {
	s.activeContext = ""
}

// SetCredential stores the active keystore credential in memory for the
// session. Nothing is persisted.
func (s *Session) SetCredential(username, password string) {
	s.credential = &sanitize.Credential{Username: username, Password: password}
}

func (s *Session) ClearCredential() {
	s.credential = nil
}

// Credential returns the active credential, nil when none is set.
func (s *Session) Credential() *sanitize.Credential {
	return s.credential
}
