package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"testing"

	"github.com/dmitrijs2005/fueltrack/internal/client/models"
	"github.com/dmitrijs2005/fueltrack/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// authClient extends fakeClient with auth responses for login flows.
type authClient struct {
	fakeClient

	authResp *models.AuthResponse
	authErr  error

	logoutCalls int
}

func (c *authClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	return c.authResp, c.authErr
}

func (c *authClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	return c.authResp, c.authErr
}

func (c *authClient) Logout(ctx context.Context) error {
	c.logoutCalls++
	return nil
}

func stubInputs(t *testing.T, texts []string, password string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		next := texts[0]
		texts = texts[1:]
		return next, nil
	}
	getPassword = func(_ io.Writer, _ string) (string, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func newAuthApp(t *testing.T, c *authClient) (*App, *session.Store) {
	t.Helper()
	db, err := sql.Open("sqlite", "file:cliauth?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE session (key TEXT PRIMARY KEY, value TEXT NOT NULL);`)
	require.NoError(t, err)

	store := session.NewStore(db)
	mgr := session.NewManager(store, testLog())
	mgr.SetClient(c)

	return &App{session: mgr, api: c, log: testLog()}, store
}

func TestLogin_SetsUserAndPersists(t *testing.T) {
	silencePrintln(t)
	stubInputs(t, []string{"alice@example.org"}, "secret")

	c := &authClient{authResp: &models.AuthResponse{
		AccessToken: "tok-123",
		TokenType:   "bearer",
		User:        models.User{ID: "u1", Email: "alice@example.org", FirstName: "Alice"},
	}}
	app, store := newAuthApp(t, c)

	require.NoError(t, app.Login(context.Background()))
	require.NotNil(t, app.user)
	assert.Equal(t, "alice@example.org", app.user.Email)

	token, err := store.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestLogin_FailureLeavesLoggedOut(t *testing.T) {
	silencePrintln(t)
	stubInputs(t, []string{"alice@example.org"}, "wrong")

	c := &authClient{authErr: assert.AnError}
	app, store := newAuthApp(t, c)

	require.Error(t, app.Login(context.Background()))
	assert.Nil(t, app.user)

	token, err := store.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestRegister_SetsUser(t *testing.T) {
	silencePrintln(t)
	stubInputs(t, []string{"bob@example.org", "Bob", "Builder"}, "secret")

	c := &authClient{authResp: &models.AuthResponse{
		AccessToken: "tok-456",
		User:        models.User{ID: "u2", Email: "bob@example.org", FirstName: "Bob", LastName: "Builder"},
	}}
	app, _ := newAuthApp(t, c)

	require.NoError(t, app.Register(context.Background()))
	require.NotNil(t, app.user)
	assert.Equal(t, "Bob Builder", app.user.FullName())
}

func TestLogout_ClearsUserAndStore(t *testing.T) {
	silencePrintln(t)

	c := &authClient{authResp: &models.AuthResponse{
		AccessToken: "tok-789",
		User:        models.User{ID: "u3", Email: "c@d.e"},
	}}
	app, store := newAuthApp(t, c)

	stubInputs(t, []string{"c@d.e"}, "pw")
	require.NoError(t, app.Login(context.Background()))

	require.NoError(t, app.Logout(context.Background()))
	assert.Nil(t, app.user)
	assert.Equal(t, 1, c.logoutCalls)

	token, err := store.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
}
