package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apictx "github.com/dtroode/tutordash-web/internal/api/http/context"
	"github.com/dtroode/tutordash-web/internal/mocks"
	"github.com/dtroode/tutordash-web/internal/service"
	"github.com/dtroode/tutordash-web/internal/session"
	"github.com/dtroode/tutordash-web/internal/storage/memory"
	"github.com/dtroode/tutordash-web/internal/testutil"
	"github.com/dtroode/tutordash-web/internal/token"
)

const testCookie = "tutordash_browser"

type browserFixture struct {
	mw       *Browser
	tokens   *service.TokenService
	registry *session.Registry
	cm       *apictx.Manager
}

func newBrowserFixture(t *testing.T) browserFixture {
	t.Helper()
	log := testutil.MakeNoopLogger()
	tokens := service.NewTokenService(token.NewJWT("test-secret", time.Hour), log)
	registry := session.NewRegistry(memory.NewStore(), mocks.NewProfileFetcher(t), log, session.RegistryConfig{})
	cm := apictx.NewManager()

	return browserFixture{
		mw:       NewBrowser(tokens, registry, cm, CookieConfig{Name: testCookie, TTL: time.Hour}, log),
		tokens:   tokens,
		registry: registry,
		cm:       cm,
	}
}

func (f browserFixture) capture(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, uuid.UUID, *session.Store) {
	t.Helper()
	var (
		gotID    uuid.UUID
		gotStore *session.Store
	)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		gotID, ok = f.cm.GetBrowserIDFromContext(r.Context())
		require.True(t, ok)
		gotStore, ok = f.cm.GetSessionFromContext(r.Context())
		require.True(t, ok)
	})

	rec := httptest.NewRecorder()
	f.mw.Handle(next).ServeHTTP(rec, req)
	return rec, gotID, gotStore
}

func TestBrowser_IssuesCookieForNewBrowser(t *testing.T) {
	f := newBrowserFixture(t)

	rec, id, store := f.capture(t, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEqual(t, uuid.Nil, id)
	require.NotNil(t, store)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, testCookie, c.Name)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 3600, c.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	resolved, err := f.tokens.Resolve(c.Value)
	require.NoError(t, err)
	assert.Equal(t, id, resolved)
}

func TestBrowser_ReusesValidCookie(t *testing.T) {
	f := newBrowserFixture(t)

	first, id, store := f.capture(t, httptest.NewRequest(http.MethodGet, "/", nil))
	c := first.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.AddCookie(c)
	rec, gotID, gotStore := f.capture(t, req)

	assert.Equal(t, id, gotID)
	assert.Same(t, store, gotStore)
	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, 1, f.registry.Len())
}

func TestBrowser_ReplacesForgedCookie(t *testing.T) {
	f := newBrowserFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "forged"})
	rec, id, _ := f.capture(t, req)

	assert.NotEqual(t, uuid.Nil, id)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.NotEqual(t, "forged", rec.Result().Cookies()[0].Value)
}

func TestBrowser_IssueFailure(t *testing.T) {
	manager := mocks.NewBrowserTokenManager(t)
	manager.On("Generate", mock.Anything).Return("", assert.AnError).Once()

	log := testutil.MakeNoopLogger()
	registry := session.NewRegistry(memory.NewStore(), mocks.NewProfileFetcher(t), log, session.RegistryConfig{})
	mw := NewBrowser(service.NewTokenService(manager, log), registry, apictx.NewManager(), CookieConfig{Name: testCookie}, log)

	called := false
	rec := httptest.NewRecorder()
	mw.Handle(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 0, registry.Len())
}
