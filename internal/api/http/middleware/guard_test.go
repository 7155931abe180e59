package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apictx "github.com/dtroode/tutordash-web/internal/api/http/context"
	"github.com/dtroode/tutordash-web/internal/mocks"
	"github.com/dtroode/tutordash-web/internal/model"
	"github.com/dtroode/tutordash-web/internal/session"
	"github.com/dtroode/tutordash-web/internal/storage/memory"
	"github.com/dtroode/tutordash-web/internal/testutil"
)

func newReadyStore(t *testing.T) *session.Store {
	t.Helper()
	s := session.NewStore(memory.NewStore(), mocks.NewProfileFetcher(t), testutil.MakeNoopLogger())
	s.Initialize(context.Background())
	<-s.Ready()
	return s
}

func serveGuarded(cm *apictx.Manager, required model.Class, store *session.Store) (*httptest.ResponseRecorder, bool) {
	called := false
	h := RequireIdentity(cm, required)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/parent-dashboard", nil)
	if store != nil {
		req = req.WithContext(cm.SetSessionToContext(req.Context(), store))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, called
}

func TestRequireIdentity_Allow(t *testing.T) {
	cm := apictx.NewManager()
	store := newReadyStore(t)
	require.NoError(t, store.Login(context.Background(), model.ParentUser{ID: 1, IsParent: true}, "tok"))

	rec, called := serveGuarded(cm, model.ClassParent, store)
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireIdentity_Pending(t *testing.T) {
	cm := apictx.NewManager()
	loading := session.NewStore(memory.NewStore(), mocks.NewProfileFetcher(t), testutil.MakeNoopLogger())

	rec, called := serveGuarded(cm, model.ClassParent, loading)
	assert.False(t, called)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"status":"pending"}`, rec.Body.String())
}

func TestRequireIdentity_RedirectsWrongClass(t *testing.T) {
	cm := apictx.NewManager()
	store := newReadyStore(t)
	require.NoError(t, store.LoginStudent(context.Background(), model.Student{ID: 3}))

	rec, called := serveGuarded(cm, model.ClassParent, store)
	assert.False(t, called)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/student-dashboard", rec.Header().Get("Location"))
}

func TestRequireIdentity_RedirectsAnonymous(t *testing.T) {
	cm := apictx.NewManager()

	rec, called := serveGuarded(cm, model.ClassStudent, newReadyStore(t))
	assert.False(t, called)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRequireIdentity_NoSessionInContext(t *testing.T) {
	cm := apictx.NewManager()

	rec, called := serveGuarded(cm, model.ClassParent, nil)
	assert.False(t, called)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}
