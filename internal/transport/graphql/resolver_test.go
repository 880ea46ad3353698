package graphql

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"employee_project/internal/domain"
	"employee_project/internal/session"
	"employee_project/internal/testutil"
	"employee_project/internal/utils"

	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	resolver  *Resolver
	users     *testutil.Users
	employees *testutil.Employees
	sessions  *testutil.Sessions
	issuer    *utils.TokenIssuer
}

func setupTestResolver(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		users:     testutil.NewUsers(),
		employees: testutil.NewEmployees(),
		sessions:  testutil.NewSessions(),
		issuer:    utils.NewTokenIssuer("test-secret", time.Hour),
	}
	env.resolver = &Resolver{
		Users:      env.users,
		Employees:  env.employees,
		Passwords:  utils.NewPasswordHasher(bcrypt.MinCost),
		Tokens:     env.issuer,
		Sessions:   env.sessions,
		SessionTTL: time.Hour,
	}
	return env
}

func requireKind(t *testing.T, err error, kind domain.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	var de *domain.Error
	require.True(t, errors.As(err, &de), "want domain error, got %T: %v", err, err)
	assert.Equal(t, kind, de.Kind)
}

func TestAddUserAndLogin(t *testing.T) {
	env := setupTestResolver(t)
	r := env.resolver
	ctx := context.Background()

	user, err := r.AddUser(ctx, credentialsArgs{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID())
	assert.Equal(t, "alice", user.Username())
	assert.NotEqual(t, "secret123", user.Password())

	t.Run("correct password", func(t *testing.T) {
		token, err := r.Login(ctx, credentialsArgs{Username: "alice", Password: "secret123"})
		require.NoError(t, err)
		require.NotNil(t, token)
		require.NotEmpty(t, *token)

		identity, err := env.issuer.Verify(*token)
		require.NoError(t, err)
		assert.Equal(t, string(user.ID()), identity.UserID)

		sess, err := env.sessions.Get(ctx, identity.SessionID)
		require.NoError(t, err)
		assert.Equal(t, identity.UserID, sess.UserID)
	})

	t.Run("wrong password and unknown user look the same", func(t *testing.T) {
		_, wrongPassword := r.Login(ctx, credentialsArgs{Username: "alice", Password: "wrong"})
		_, unknownUser := r.Login(ctx, credentialsArgs{Username: "nobody", Password: "x"})

		requireKind(t, wrongPassword, domain.KindAuthFailed)
		requireKind(t, unknownUser, domain.KindAuthFailed)
		assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
	})
}

func TestLoginStoreFailureIsInternal(t *testing.T) {
	env := setupTestResolver(t)
	env.users.Err = errors.New("connection reset by peer")

	_, err := env.resolver.Login(context.Background(), credentialsArgs{Username: "alice", Password: "secret123"})
	requireKind(t, err, domain.KindInternal)
	assert.NotContains(t, err.Error(), "connection reset")
}

func TestLoginSessionFailureIsInternal(t *testing.T) {
	env := setupTestResolver(t)
	ctx := context.Background()
	_, err := env.resolver.AddUser(ctx, credentialsArgs{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	env.sessions.Err = errors.New("redis down")

	_, err = env.resolver.Login(ctx, credentialsArgs{Username: "alice", Password: "secret123"})
	requireKind(t, err, domain.KindInternal)
}

func TestLoginSetsCookieAndLogoutDestroysSession(t *testing.T) {
	env := setupTestResolver(t)
	r := env.resolver
	_, err := r.AddUser(context.Background(), credentialsArgs{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	rc := session.NewRequestContext(w, httptest.NewRequest("POST", "/graphql", nil))
	ctx := session.WithRequestContext(context.Background(), rc)

	token, err := r.Login(ctx, credentialsArgs{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, *token, cookies[0].Value)

	identity, err := env.issuer.Verify(*token)
	require.NoError(t, err)

	w = httptest.NewRecorder()
	rc = session.NewRequestContext(w, httptest.NewRequest("POST", "/graphql", nil))
	rc.Identity = identity
	msg, err := r.Logout(session.WithRequestContext(context.Background(), rc))
	require.NoError(t, err)
	assert.Equal(t, "Logged out successfully", *msg)

	_, err = env.sessions.Get(context.Background(), identity.SessionID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, session.CookieName, cleared[0].Name)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestLogoutAnonymous(t *testing.T) {
	env := setupTestResolver(t)

	msg, err := env.resolver.Logout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Logged out successfully", *msg)
}

func TestGetUserByID(t *testing.T) {
	env := setupTestResolver(t)
	r := env.resolver
	ctx := context.Background()

	created, err := r.AddUser(ctx, credentialsArgs{Username: "bob", Password: "pw"})
	require.NoError(t, err)

	got, err := r.GetUserByID(ctx, struct{ ID graphqlgo.ID }{ID: created.ID()})
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username())

	_, err = r.GetUserByID(ctx, struct{ ID graphqlgo.ID }{ID: "missing"})
	requireKind(t, err, domain.KindNotFound)
}

func TestAddUserRejectsOverlongPassword(t *testing.T) {
	env := setupTestResolver(t)

	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}
	_, err := env.resolver.AddUser(context.Background(), credentialsArgs{Username: "alice", Password: string(long)})
	requireKind(t, err, domain.KindValidation)
	assert.Zero(t, env.users.Len())
}

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestEmployeeLifecycle(t *testing.T) {
	env := setupTestResolver(t)
	r := env.resolver
	ctx := context.Background()

	created, err := r.CreateEmployee(ctx, createEmployeeArgs{
		Firstname:   "Jo",
		Lastname:    "Doe",
		Email:       "jo@x.com",
		Gender:      "F",
		City:        "NYC",
		Designation: "Eng",
		Salary:      100000,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID())
	id := string(created.ID())

	t.Run("read back", func(t *testing.T) {
		got, err := r.GetEmployeeByID(ctx, struct{ ID graphqlgo.ID }{ID: created.ID()})
		require.NoError(t, err)
		assert.Equal(t, *created.e, *got.e)

		all, err := r.GetAllEmployees(ctx)
		require.NoError(t, err)
		require.Len(t, *all, 1)
		assert.Equal(t, created.ID(), (*all)[0].ID())
	})

	t.Run("partial update", func(t *testing.T) {
		before := *created.e
		got, err := r.UpdateEmployee(ctx, updateEmployeeArgs{ID: id, Salary: floatPtr(120000)})
		require.NoError(t, err)

		want := before
		want.Salary = 120000
		assert.Equal(t, want, *got.e)
	})

	t.Run("update single string field", func(t *testing.T) {
		got, err := r.UpdateEmployee(ctx, updateEmployeeArgs{ID: id, City: strPtr("LA")})
		require.NoError(t, err)
		assert.Equal(t, "LA", got.City())
		assert.Equal(t, "Jo", got.Firstname())
		assert.Equal(t, 120000.0, got.Salary())
	})

	t.Run("delete returns last state", func(t *testing.T) {
		got, err := r.DeleteEmployee(ctx, struct{ ID string }{ID: id})
		require.NoError(t, err)
		assert.Equal(t, "LA", got.City())
		assert.Equal(t, 120000.0, got.Salary())

		_, err = r.GetEmployeeByID(ctx, struct{ ID graphqlgo.ID }{ID: graphqlgo.ID(id)})
		requireKind(t, err, domain.KindNotFound)
	})

	t.Run("missing ids", func(t *testing.T) {
		_, err := r.UpdateEmployee(ctx, updateEmployeeArgs{ID: id, City: strPtr("SF")})
		requireKind(t, err, domain.KindNotFound)

		_, err = r.DeleteEmployee(ctx, struct{ ID string }{ID: id})
		requireKind(t, err, domain.KindNotFound)
	})
}

func TestUpdateEmployeeArgsFields(t *testing.T) {
	args := updateEmployeeArgs{ID: "x", Email: strPtr("a@b.c"), Salary: floatPtr(1)}
	assert.Equal(t, map[string]interface{}{"email": "a@b.c", "salary": 1.0}, args.fields())

	assert.Empty(t, updateEmployeeArgs{ID: "x"}.fields())
}

func TestEmployeeStoreFailureIsInternal(t *testing.T) {
	env := setupTestResolver(t)
	env.employees.Err = errors.New("pq: relation \"employees\" does not exist")

	_, err := env.resolver.GetAllEmployees(context.Background())
	requireKind(t, err, domain.KindInternal)
	assert.Equal(t, internalMessage, err.Error())
}
