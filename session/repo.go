package session

// Repo manages storage of browser session token state, keyed by the
// session-ID cookie value.
//
// Get never fails for an unknown session ID; it returns the zero Session,
// which callers treat as "no session". Set merges the update into whatever
// is stored, creating the session if needed. Clear removes all fields at
// once.
type Repo interface {
	Get(sessionID string) (Session, error)
	Set(sessionID string, update Update) error
	Clear(sessionID string) error
}
