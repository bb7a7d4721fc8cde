package sessions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rakhulsr/go-ecommerce-admin/app/models"
	"github.com/gorilla/securecookie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore() *CookieSessionStore {
	return NewCookieSessionStore(false, securecookie.GenerateRandomKey(64), securecookie.GenerateRandomKey(32))
}

// carry copies the cookies set on rec onto a new request.
func carry(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestCookieSessionStore_AdminRoundTrip(t *testing.T) {
	store := newStore()

	_, ok := store.GetAdmin(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)

	rec := httptest.NewRecorder()
	admin := Admin{Token: "tok-1", User: models.User{ID: "u1", Email: "ops@example.com", Role: models.RoleAdmin}}
	require.NoError(t, store.SetAdmin(rec, httptest.NewRequest(http.MethodPost, "/login", nil), admin))

	got, ok := store.GetAdmin(carry(rec))
	require.True(t, ok)
	assert.Equal(t, admin, *got)

	clearRec := httptest.NewRecorder()
	require.NoError(t, store.ClearSession(clearRec, carry(rec)))
	cookies := clearRec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestFlasher_SaveAndPop(t *testing.T) {
	store := newStore()
	f := NewFlasher()
	f.Success(context.Background(), "Product created successfully")
	f.Error(context.Background(), "Failed to fetch products")
	assert.Len(t, f.Pending(), 2)

	rec := httptest.NewRecorder()
	require.NoError(t, f.Save(store, rec, httptest.NewRequest(http.MethodPost, "/", nil)))
	assert.Empty(t, f.Pending())

	popRec := httptest.NewRecorder()
	flashes := store.Flashes(popRec, carry(rec))
	require.Len(t, flashes, 2)
	assert.Equal(t, Flash{Kind: FlashSuccess, Message: "Product created successfully"}, flashes[0])
	assert.True(t, flashes[1].IsError())

	assert.Empty(t, store.Flashes(httptest.NewRecorder(), carry(popRec)))
}

func TestContextToken(t *testing.T) {
	tok, err := ContextToken{}.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tok)

	ctx := WithAdmin(context.Background(), &Admin{Token: "abc"})
	tok, err = ContextToken{}.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)
}
