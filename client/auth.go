package client

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/user"
)

type State string

const (
	StateLoading       State = "loading"
	StateIdle          State = "idle"
	StateAuthenticated State = "authenticated"
)

// AuthContext holds the signed-in user of a user agent.
//
// It starts loading, settles on idle or authenticated once mounted, becomes authenticated on a
// successful login and idle again on logout.
type AuthContext struct {
	client *Client
	store  KeyStore
	logger core.Logger

	mu    sync.RWMutex
	state State
	user  *user.User
	token string
}

func NewAuthContext(c *Client, store KeyStore, logger core.Logger) *AuthContext {
	return &AuthContext{client: c, store: store, logger: logger, state: StateLoading}
}

func (a *AuthContext) set(state State, usr *user.User, token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = state
	a.user = usr
	a.token = token
}

// Mount restores the persisted session. A key the API rejects is cleared.
func (a *AuthContext) Mount(ctx context.Context) error {
	key, found, err := a.store.Load()
	if err != nil {
		a.set(StateIdle, nil, "")
		return errors.Wrap(err, "loading key")
	}
	if !found {
		a.set(StateIdle, nil, "")
		return nil
	}

	usr, err := a.client.GetUser(ctx, key.UserID, key.Token)
	if err != nil {
		a.logger.Warn("auth: stored session rejected", err)
		a.set(StateIdle, nil, "")
		if cErr := a.store.Clear(); cErr != nil {
			return errors.Wrap(cErr, "clearing key")
		}
		return nil
	}
	a.set(StateAuthenticated, &usr, key.Token)
	return nil
}

// Login signs in and persists the session. On failure the context is left unauthenticated.
func (a *AuthContext) Login(ctx context.Context, email, password string) error {
	usr, token, err := a.client.Login(ctx, email, password)
	if err != nil {
		a.set(StateIdle, nil, "")
		return err
	}
	if err := a.store.Save(Key{UserID: usr.ID, Token: token}); err != nil {
		a.logger.Warn("auth: session not persisted", err)
	}
	a.set(StateAuthenticated, &usr, token)
	return nil
}

func (a *AuthContext) Logout() error {
	a.set(StateIdle, nil, "")
	return errors.Wrap(a.store.Clear(), "clearing key")
}

func (a *AuthContext) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// User returns the signed-in user, if any.
func (a *AuthContext) User() (user.User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return user.User{}, false
	}
	return *a.user, true
}

func (a *AuthContext) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}
