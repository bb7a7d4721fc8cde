package sessions

import (
	"encoding/gob"
	"log"
	"net/http"
	"time"

	"github.com/Rakhulsr/go-ecommerce-admin/app/models"
	"github.com/gorilla/sessions"
)

const (
	sessionCookieName = "admin-console-session"

	tokenSessionKey     = "token"
	userIDSessionKey    = "userID"
	emailSessionKey     = "email"
	firstNameSessionKey = "firstName"
	lastNameSessionKey  = "lastName"
	roleSessionKey      = "role"
)

func init() {
	gob.Register(Flash{})
}

// Admin is the signed-in staff member together with the bearer token the
// backend issued for them.
type Admin struct {
	Token string
	User  models.User
}

type SessionStore interface {
	GetAdmin(r *http.Request) (*Admin, bool)
	SetAdmin(w http.ResponseWriter, r *http.Request, admin Admin) error
	ClearSession(w http.ResponseWriter, r *http.Request) error

	AddFlashes(w http.ResponseWriter, r *http.Request, flashes ...Flash) error
	Flashes(w http.ResponseWriter, r *http.Request) []Flash
}

type CookieSessionStore struct {
	store *sessions.CookieStore
}

func NewCookieSessionStore(secure bool, keyPairs ...[]byte) *CookieSessionStore {
	store := sessions.NewCookieStore(keyPairs...)

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(12 * time.Hour / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSessionStore{store: store}
}

// getSession always returns a usable session. A cookie that fails to decode
// (rotated keys, tampering) yields a fresh one.
func (c *CookieSessionStore) getSession(r *http.Request) *sessions.Session {
	session, err := c.store.Get(r, sessionCookieName)
	if err != nil {
		log.Printf("CookieSessionStore.getSession: discarding unreadable session: %v", err)
	}
	return session
}

func (c *CookieSessionStore) GetAdmin(r *http.Request) (*Admin, bool) {
	session := c.getSession(r)
	token, _ := session.Values[tokenSessionKey].(string)
	if token == "" {
		return nil, false
	}
	str := func(key string) string {
		v, _ := session.Values[key].(string)
		return v
	}
	return &Admin{
		Token: token,
		User: models.User{
			ID:        str(userIDSessionKey),
			Email:     str(emailSessionKey),
			FirstName: str(firstNameSessionKey),
			LastName:  str(lastNameSessionKey),
			Role:      str(roleSessionKey),
		},
	}, true
}

func (c *CookieSessionStore) SetAdmin(w http.ResponseWriter, r *http.Request, admin Admin) error {
	session := c.getSession(r)
	session.Values[tokenSessionKey] = admin.Token
	session.Values[userIDSessionKey] = admin.User.ID
	session.Values[emailSessionKey] = admin.User.Email
	session.Values[firstNameSessionKey] = admin.User.FirstName
	session.Values[lastNameSessionKey] = admin.User.LastName
	session.Values[roleSessionKey] = admin.User.Role
	return session.Save(r, w)
}

func (c *CookieSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session := c.getSession(r)
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

func (c *CookieSessionStore) AddFlashes(w http.ResponseWriter, r *http.Request, flashes ...Flash) error {
	if len(flashes) == 0 {
		return nil
	}
	session := c.getSession(r)
	for _, f := range flashes {
		session.AddFlash(f)
	}
	return session.Save(r, w)
}

// Flashes pops every pending flash. It must run before the response body is
// written since it rewrites the cookie.
func (c *CookieSessionStore) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	session := c.getSession(r)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(r, w); err != nil {
		log.Printf("CookieSessionStore.Flashes: failed to save session: %v", err)
	}
	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}
