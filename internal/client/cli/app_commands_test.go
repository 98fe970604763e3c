package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akimovd/wastepoint/internal/client/api"
	"github.com/akimovd/wastepoint/internal/client/config"
	"github.com/akimovd/wastepoint/internal/client/guard"
	"github.com/akimovd/wastepoint/internal/client/models"
	"github.com/akimovd/wastepoint/internal/client/repositories/metadata"
	"github.com/akimovd/wastepoint/internal/client/session"
	"github.com/akimovd/wastepoint/internal/client/store"
	"github.com/akimovd/wastepoint/internal/client/userstate"
	"github.com/akimovd/wastepoint/internal/logging"

	_ "modernc.org/sqlite"
)

// fakeAPI is a canned api.Client for exercising the command handlers.
type fakeAPI struct {
	loginEmail    string
	loginPassword string
	loginResult   *api.LoginResult
	loginErr      error

	registered     []models.Registration
	registeredPath []string

	token string
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (*api.LoginResult, error) {
	f.loginEmail, f.loginPassword = email, password
	return f.loginResult, f.loginErr
}
func (f *fakeAPI) RegisterHousehold(_ context.Context, reg models.Registration) error {
	f.registered = append(f.registered, reg)
	f.registeredPath = append(f.registeredPath, "household")
	return nil
}
func (f *fakeAPI) RegisterCollector(_ context.Context, reg models.Registration) error {
	f.registered = append(f.registered, reg)
	f.registeredPath = append(f.registeredPath, "collector")
	return nil
}
func (f *fakeAPI) RegisterAdmin(_ context.Context, reg models.Registration) error {
	f.registered = append(f.registered, reg)
	f.registeredPath = append(f.registeredPath, "admin")
	return nil
}
func (f *fakeAPI) Logout(context.Context) error { return nil }
func (f *fakeAPI) RefreshToken(context.Context) (string, error) {
	return "", nil
}
func (f *fakeAPI) CurrentProfile(context.Context) (*models.UserRecord, error) {
	return nil, nil
}
func (f *fakeAPI) UpdateProfile(_ context.Context, upd models.ProfileUpdate) (*models.UserRecord, error) {
	return nil, nil
}
func (f *fakeAPI) Ping(context.Context) error { return nil }

func (f *fakeAPI) SetAccessToken(token string) { f.token = token }

func (f *fakeAPI) SetUnauthorizedRetry(api.RefreshHook) {}

func (f *fakeAPI) Close() error { return nil }

// stubTexts replaces getSimpleText with a queue of canned answers, one per
// prompt, in order.
func stubTexts(t *testing.T, answers ...string) {
	t.Helper()
	orig := getSimpleText
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		require.NotEmpty(t, answers, "more prompts than canned answers")
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	t.Cleanup(func() { getSimpleText = orig })
}

func stubPassword(t *testing.T, pw []byte) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) {
		return append([]byte(nil), pw...), nil
	}
	t.Cleanup(func() { getPassword = orig })
}

func newTestApp(t *testing.T, client api.Client) (*App, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()

	log := logging.NewSlogLogger(slog.New(slog.DiscardHandler))

	db, err := store.OpenDatabase(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st := store.New(metadata.NewSQLiteRepository(db), log)

	sess := session.NewManager(client, st, session.NopNotifier{}, log)
	sess.Bind()
	t.Cleanup(sess.Close)

	users := userstate.New(sess)
	t.Cleanup(users.Close)

	var out bytes.Buffer
	return &App{
		config:  config.LoadConfig(),
		client:  client,
		session: sess,
		users:   users,
		guard:   guard.New(users),
		reader:  bufio.NewReader(strings.NewReader("")),
		out:     &out,
	}, &out
}

func householdUser() models.UserRecord {
	return models.UserRecord{
		ID:        "u-1",
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.org",
		RoleName:  models.RoleHousehold,
	}
}

func TestLogin_Success(t *testing.T) {
	f := &fakeAPI{loginResult: &api.LoginResult{Token: "tok-1", User: householdUser()}}
	a, _ := newTestApp(t, f)

	stubTexts(t, "jane@example.org")
	stubPassword(t, []byte("secret"))

	require.NoError(t, a.Login(context.Background()))

	assert.Equal(t, "jane@example.org", f.loginEmail)
	assert.Equal(t, "secret", f.loginPassword)
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "tok-1", f.token)
	assert.Equal(t, "jane@example.org (HOUSEHOLD)", a.status())
}

func TestRegister_CollectorPromptsMunicipality(t *testing.T) {
	f := &fakeAPI{}
	a, _ := newTestApp(t, f)

	stubTexts(t, "COLLECTOR", "John", "Smith", "john@example.org", "555-0101", "1 Main St", "Springfield")
	stubPassword(t, []byte("secret"))

	require.NoError(t, a.Register(context.Background()))

	require.Len(t, f.registered, 1)
	assert.Equal(t, []string{"collector"}, f.registeredPath)
	assert.Equal(t, "Springfield", f.registered[0].MunicipalityName)
	assert.False(t, a.isLoggedIn(), "registration must not log the account in")
}

func TestRegister_UnsupportedRole(t *testing.T) {
	f := &fakeAPI{}
	a, _ := newTestApp(t, f)

	stubTexts(t, "MUNICIPALITY", "A", "B", "c@d.org", "555", "addr")
	stubPassword(t, []byte("secret"))

	err := a.Register(context.Background())
	require.Error(t, err)
	assert.Empty(t, f.registered)
}

func TestProfile_NotLoggedIn(t *testing.T) {
	a, out := newTestApp(t, &fakeAPI{})

	require.NoError(t, a.Profile(context.Background()))
	assert.Contains(t, out.String(), "Not logged in")
}

func TestOpen_PermissionRouting(t *testing.T) {
	f := &fakeAPI{loginResult: &api.LoginResult{Token: "tok", User: householdUser()}}
	a, out := newTestApp(t, f)

	require.NoError(t, a.Open(context.Background(), "pickups"))
	assert.Contains(t, out.String(), "Redirecting to /login")

	stubTexts(t, "jane@example.org")
	stubPassword(t, []byte("pw"))
	require.NoError(t, a.Login(context.Background()))

	out.Reset()
	require.NoError(t, a.Open(context.Background(), "pickups"))
	assert.Contains(t, out.String(), "Request a pickup")

	out.Reset()
	require.NoError(t, a.Open(context.Background(), "reports"))
	assert.Contains(t, out.String(), "Redirecting to /unauthorized")

	out.Reset()
	require.NoError(t, a.Open(context.Background(), "nosuchview"))
	assert.Contains(t, out.String(), "Unknown view")
}
