package client

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dig_container "github.com/trezcool/classdesk/apps/api/di/dig"
	echoapi "github.com/trezcool/classdesk/apps/api/echo"
	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/user"
	logsvc "github.com/trezcool/classdesk/services/logger"
	testutil "github.com/trezcool/classdesk/tests"
)

type fixture struct {
	srv   *httptest.Server
	store *FileStore
	alice user.User
	token string
}

func setup(t *testing.T) *fixture {
	t.Helper()

	var (
		api   *echoapi.Server
		users *user.Service
	)
	c := dig_container.New(core.NewTestConfig)
	require.NoError(t, c.Invoke(func(s *echoapi.Server, u *user.Service) {
		api, users = s, u
	}))

	f := &fixture{
		srv:   httptest.NewServer(api),
		store: NewFileStore(filepath.Join(t.TempDir(), "session", "key.json")),
		alice: testutil.CreateUser(t, users, "Alice Johnson", "alice@example.com", "Passw0rd!", user.RoleStudent),
	}
	t.Cleanup(f.srv.Close)

	token, err := api.GenerateToken(f.alice)
	require.NoError(t, err)
	f.token = token
	return f
}

func (f *fixture) authContext() *AuthContext {
	return NewAuthContext(New(f.srv.URL, f.srv.Client()), f.store, logsvc.NewNopLogger())
}

func TestAuthContext_Login(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		password  string
		wantErr   error
		wantState State
	}{
		{name: "unknown email", email: "nobody@example.com", password: "Passw0rd!", wantErr: ErrInvalidCredentials, wantState: StateIdle},
		{name: "wrong password", email: "alice@example.com", password: "nope", wantErr: ErrInvalidCredentials, wantState: StateIdle},
		{name: "success", email: "alice@example.com", password: "Passw0rd!", wantState: StateAuthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			auth := f.authContext()
			assert.Equal(t, StateLoading, auth.State())

			err := auth.Login(context.Background(), tt.email, tt.password)
			assert.Equal(t, tt.wantErr, err)
			assert.Equal(t, tt.wantState, auth.State())

			usr, ok := auth.User()
			key, found, lErr := f.store.Load()
			require.NoError(t, lErr)
			if tt.wantErr != nil {
				assert.False(t, ok)
				assert.Empty(t, auth.Token())
				assert.False(t, found, "no key persisted")
				return
			}
			if assert.True(t, ok) {
				assert.Equal(t, f.alice.ID, usr.ID)
				assert.Equal(t, "alice@example.com", usr.Email)
			}
			assert.True(t, found)
			assert.Equal(t, Key{UserID: f.alice.ID, Token: auth.Token()}, key)
		})
	}
}

func TestAuthContext_Mount(t *testing.T) {
	tests := []struct {
		name      string
		key       *Key
		wantState State
		wantKept  bool
	}{
		{name: "no key", wantState: StateIdle},
		{name: "valid key", key: &Key{}, wantState: StateAuthenticated, wantKept: true},
		{name: "bad token", key: &Key{Token: "lol"}, wantState: StateIdle},
		{name: "unknown user", key: &Key{UserID: "e1b5a4bc-5a6f-4cc4-9b7d-03f4a6f8c0a1"}, wantState: StateIdle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			if tt.key != nil {
				key := Key{UserID: f.alice.ID, Token: f.token}
				if tt.key.UserID != "" {
					key.UserID = tt.key.UserID
				}
				if tt.key.Token != "" {
					key.Token = tt.key.Token
				}
				require.NoError(t, f.store.Save(key))
			}

			auth := f.authContext()
			require.NoError(t, auth.Mount(context.Background()))
			assert.Equal(t, tt.wantState, auth.State())

			usr, ok := auth.User()
			assert.Equal(t, tt.wantState == StateAuthenticated, ok)
			if ok {
				assert.Equal(t, f.alice.ID, usr.ID)
				assert.Equal(t, f.token, auth.Token())
			}

			_, found, err := f.store.Load()
			require.NoError(t, err)
			assert.Equal(t, tt.wantKept, found)
		})
	}
}

func TestAuthContext_Logout(t *testing.T) {
	f := setup(t)
	auth := f.authContext()
	require.NoError(t, auth.Login(context.Background(), "alice@example.com", "Passw0rd!"))
	require.Equal(t, StateAuthenticated, auth.State())

	require.NoError(t, auth.Logout())
	assert.Equal(t, StateIdle, auth.State())
	_, ok := auth.User()
	assert.False(t, ok)

	_, found, err := f.store.Load()
	require.NoError(t, err)
	assert.False(t, found)

	// a fresh agent no longer resumes the session
	next := f.authContext()
	require.NoError(t, next.Mount(context.Background()))
	assert.Equal(t, StateIdle, next.State())
}

func TestClient_GetUser(t *testing.T) {
	f := setup(t)
	cl := New(f.srv.URL+"/", nil)

	usr, err := cl.GetUser(context.Background(), f.alice.ID, f.token)
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", usr.Name)

	_, err = cl.GetUser(context.Background(), f.alice.ID, "")
	assert.Equal(t, ErrUnauthenticated, err)

	_, err = cl.GetUser(context.Background(), "e1b5a4bc-5a6f-4cc4-9b7d-03f4a6f8c0a1", f.token)
	assert.Equal(t, ErrNotFound, err)
}

func TestFileStore(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "key.json"))

	_, found, err := store.Load()
	require.NoError(t, err)
	assert.False(t, found)

	want := Key{UserID: "42", Token: "t0k3n"}
	require.NoError(t, store.Save(want))
	got, found, err := store.Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear(), "clearing twice")
	_, found, err = store.Load()
	require.NoError(t, err)
	assert.False(t, found)
}
