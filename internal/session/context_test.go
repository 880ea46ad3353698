package session

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"employee_project/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContextAnonymous(t *testing.T) {
	rc := FromContext(context.Background())
	require.NotNil(t, rc)
	assert.False(t, rc.Authenticated())

	// no response handle: cookie calls are no-ops
	rc.SetSessionCookie("tok", time.Now())
	rc.ClearSessionCookie()
}

func TestRequestContextCookies(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/graphql", nil)

	rc := NewRequestContext(w, r)
	rc.Identity = &domain.Identity{UserID: "u-1"}
	ctx := WithRequestContext(r.Context(), rc)

	got := FromContext(ctx)
	require.Same(t, rc, got)
	assert.True(t, got.Authenticated())

	got.SetSessionCookie("tok", time.Now().Add(time.Hour))
	got.ClearSessionCookie()

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, "", cookies[1].Value)
	assert.Equal(t, -1, cookies[1].MaxAge)
}

func TestNewSession(t *testing.T) {
	s, err := New("u-1", time.Hour)
	require.NoError(t, err)
	assert.Len(t, s.ID, idLength)
	assert.Equal(t, "u-1", s.UserID)
	assert.False(t, s.IsExpired())
	assert.WithinDuration(t, time.Now().Add(time.Hour), s.ExpiresAt, time.Minute)

	forever, err := New("u-1", 0)
	require.NoError(t, err)
	assert.True(t, forever.ExpiresAt.IsZero())
	assert.NotEqual(t, s.ID, forever.ID)
}
