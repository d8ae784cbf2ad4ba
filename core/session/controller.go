package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	apiclient "github.com/umoja/portal/api"
	"github.com/umoja/portal/core"
)

type (
	// Event is broadcast to subscribers whenever the session changes, so
	// every open screen reacts uniformly instead of re-reading storage.
	Event int

	// Controller owns the session lifecycle:
	// Anonymous -> Authenticating -> Authenticated -> Anonymous.
	// It is the only writer of session state; everything else reads it
	// through Current()/Token().
	Controller struct {
		store Store
		api   *apiclient.Client
		log   core.Logger

		mu        sync.Mutex
		state     State
		current   Session
		observers []func(Event)
	}

	// LoginRequest carries the credentials; both fields are checked
	// locally before any network call.
	LoginRequest struct {
		Phone    string `json:"phone" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	loginPayload struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
)

const (
	EventLogin Event = iota + 1
	EventLogout
)

func NewController(store Store, api *apiclient.Client, logger core.Logger) *Controller {
	c := &Controller{store: store, api: api, log: logger}
	api.SetTokenSource(c.Token)
	api.SetAuthExpiredHandler(c.expire)
	return c
}

// Subscribe registers an observer notified on login and logout. Logout is
// broadcast exactly once per session, even if several in-flight requests
// hit a 401 concurrently.
func (c *Controller) Subscribe(fn func(Event)) {
	c.mu.Lock()
	c.observers = append(c.observers, fn)
	c.mu.Unlock()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Current returns the active session; ok is false while not authenticated.
func (c *Controller) Current() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.state == Authenticated
}

// Token is the token source handed to the API client.
func (c *Controller) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current.Token
}

// Login authenticates against POST /auth/login and persists the session.
// Empty or whitespace-only credentials are rejected locally with a
// field-level validation error and zero network calls.
func (c *Controller) Login(ctx context.Context, phone, password string) (Session, error) {
	creds := LoginRequest{
		Phone:    core.CleanPhone(phone),
		Password: core.CleanString(password),
	}
	if err := core.ValidateStruct(creds); err != nil {
		return Session{}, err
	}

	c.mu.Lock()
	c.state = Authenticating
	c.mu.Unlock()

	env, err := c.api.Post(ctx, "/auth/login", creds)
	if err == nil {
		// a declined login can also ride a 2xx body
		err = env.Err()
	}
	if err != nil {
		c.mu.Lock()
		c.state = Anonymous
		c.mu.Unlock()
		return Session{}, err
	}

	var payload loginPayload
	if err := env.Decode(&payload); err != nil {
		c.mu.Lock()
		c.state = Anonymous
		c.mu.Unlock()
		return Session{}, errors.Wrap(err, "decoding login payload")
	}

	usr := identityFromToken(payload.Token, payload.User)
	sess := Session{Token: payload.Token, User: usr}

	if err := c.store.Set(sess.Token, sess.User); err != nil {
		if c.log != nil {
			c.log.Warn("persisting session failed", err)
		}
	}

	c.mu.Lock()
	c.state = Authenticated
	c.current = sess
	observers := append([]func(Event){}, c.observers...)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(EventLogin)
	}
	return sess, nil
}

// Logout clears the persisted session unconditionally, even when no token
// exists. It is callable from any component, not only the session owner.
func (c *Controller) Logout() {
	if err := c.store.Clear(); err != nil && c.log != nil {
		c.log.Warn("clearing session store failed", err)
	}

	c.mu.Lock()
	wasActive := c.state != Anonymous
	c.state = Anonymous
	c.current = Session{}
	observers := append([]func(Event){}, c.observers...)
	c.mu.Unlock()

	if wasActive {
		for _, fn := range observers {
			fn(EventLogout)
		}
	}
}

// Restore resumes a persisted session after a restart. The token is taken
// at face value; the first rejected request will force a logout.
func (c *Controller) Restore() bool {
	sess, ok := c.store.Get()
	if !ok || sess.Token == "" {
		return false
	}
	sess.User = identityFromToken(sess.Token, sess.User)

	c.mu.Lock()
	c.state = Authenticated
	c.current = sess
	c.mu.Unlock()
	return true
}

// expire handles a 401 from any in-flight request: same as Logout, it
// transitions to Anonymous exactly once.
func (c *Controller) expire() {
	c.Logout()
}
