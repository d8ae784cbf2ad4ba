package session

// Store persists the two durable pieces of client state: the bearer token
// and the user profile JSON. Implementations live under storage/session.
// No expiry is tracked locally; expiry is discovered by the server
// rejecting a request.
type Store interface {
	// Get returns the persisted session, or ok=false when none exists.
	Get() (sess Session, ok bool)
	Set(token string, usr User) error
	Clear() error
}
