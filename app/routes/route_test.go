package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Rakhulsr/go-ecommerce-admin/app/configs"
	"github.com/gorilla/securecookie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend records every call the console makes and answers with canned
// envelopes.
type fakeBackend struct {
	mu     sync.Mutex
	calls  []*http.Request
	bodies map[string][]byte
}

func (b *fakeBackend) record(r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, r.Clone(r.Context()))
}

func (b *fakeBackend) recordBody(r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bodies == nil {
		b.bodies = map[string][]byte{}
	}
	b.bodies[r.Method+" "+r.URL.Path] = raw
	b.calls = append(b.calls, r.Clone(r.Context()))
}

func (b *fakeBackend) body(method, path string) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bodies[method+" "+path]
}

func (b *fakeBackend) count(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if c.Method == method && c.URL.Path == path {
			n++
		}
	}
	return n
}

func (b *fakeBackend) last(method, path string) *http.Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.calls) - 1; i >= 0; i-- {
		if b.calls[i].Method == method && b.calls[i].URL.Path == path {
			return b.calls[i]
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func list(data interface{}, page int) map[string]interface{} {
	return map[string]interface{}{
		"data":       data,
		"pagination": map[string]int{"page": page, "limit": 20, "total": 41, "total_pages": 3},
	}
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"data": map[string]interface{}{
				"token": "tok-123",
				"user":  map[string]string{"id": "u1", "email": "admin@example.com", "role": "admin"},
			},
		})
	})
	mux.HandleFunc("GET /categories", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		writeJSON(w, http.StatusOK, list([]map[string]interface{}{
			{"id": "c1", "name": "Shoes", "slug": "shoes", "is_active": true, "created_at": time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		}, 1))
	})
	mux.HandleFunc("GET /categories/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": map[string]string{"id": r.PathValue("id"), "name": "Shoes"}})
	})
	mux.HandleFunc("DELETE /categories/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		writeJSON(w, http.StatusOK, list([]map[string]interface{}{}, 1))
	})
	mux.HandleFunc("POST /products", func(w http.ResponseWriter, r *http.Request) {
		b.recordBody(r)
		writeJSON(w, http.StatusCreated, map[string]interface{}{"data": map[string]string{"id": "p1"}})
	})
	mux.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		writeJSON(w, http.StatusOK, list([]map[string]interface{}{
			{"id": "o1", "order_number": "ORD-1001", "status": "pending", "total_amount": "99.50",
				"shipping_address": map[string]string{"full_name": "Jane Buyer"}},
			{"id": "o2", "order_number": "ORD-1002", "status": "pending", "total_amount": "10"},
		}, 2))
	})
	mux.HandleFunc("PUT /orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		b.recordBody(r)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"data": map[string]string{"id": r.PathValue("id"), "status": "shipped"},
		})
	})
	return mux
}

type console struct {
	t       *testing.T
	backend *fakeBackend
	server  *httptest.Server
	client  *http.Client
}

func newConsole(t *testing.T) *console {
	t.Helper()
	backend := &fakeBackend{}
	api := httptest.NewServer(backend.handler())
	t.Cleanup(api.Close)

	env := configs.ENV{
		APP_ENV:         "test",
		APIBaseURL:      api.URL,
		APITimeout:      5 * time.Second,
		MaxImages:       5,
		PageSize:        20,
		DisplayTimezone: "UTC",
	}
	keys := configs.SessionKeys{
		AuthKey: securecookie.GenerateRandomKey(32),
		EncKey:  securecookie.GenerateRandomKey(32),
	}
	server := httptest.NewServer(NewRouter(env, keys))
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &console{t: t, backend: backend, server: server, client: client}
}

func (c *console) get(path string) (*http.Response, string) {
	c.t.Helper()
	resp, err := c.client.Get(c.server.URL + path)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, string(body)
}

func (c *console) post(path string, form url.Values) (*http.Response, string) {
	c.t.Helper()
	resp, err := c.client.PostForm(c.server.URL+path, form)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, string(body)
}

func (c *console) login() {
	c.t.Helper()
	resp, _ := c.post("/login", url.Values{"email": {"admin@example.com"}, "password": {"secret"}})
	require.Equal(c.t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(c.t, "/admin/dashboard", resp.Header.Get("Location"))
}

func TestAdminRequiresLogin(t *testing.T) {
	c := newConsole(t)

	resp, _ := c.get("/admin/orders?page=2")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?next="+url.QueryEscape("/admin/orders?page=2"), resp.Header.Get("Location"))
	assert.Zero(t, c.backend.count(http.MethodGet, "/orders"))
}

func TestLoginRejectsInvalidForm(t *testing.T) {
	c := newConsole(t)

	resp, _ := c.post("/login", url.Values{"email": {"not-an-email"}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Zero(t, c.backend.count(http.MethodPost, "/auth/login"))
}

func TestCreateProductIsBlockedByValidation(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
		want string
	}{
		{
			name: "no category",
			form: url.Values{"name": {"Runner"}, "price": {"10"}, "stock_quantity": {"3"}, "images": {"https://cdn.example.com/a.jpg"}},
			want: "Please select a category",
		},
		{
			name: "no images",
			form: url.Values{"name": {"Runner"}, "price": {"10"}, "stock_quantity": {"3"}, "category_id": {"c1"}},
			want: "Please add at least one product image",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newConsole(t)
			c.login()

			resp, body := c.post("/admin/products", tt.form)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, body, tt.want)
			assert.Zero(t, c.backend.count(http.MethodPost, "/products"))
		})
	}
}

func TestCreateProductRedirectsWithFlash(t *testing.T) {
	c := newConsole(t)
	c.login()

	resp, _ := c.post("/admin/products", url.Values{
		"name":           {"Runner"},
		"price":          {"10.50"},
		"stock_quantity": {"3"},
		"category_id":    {"c1"},
		"images":         {"https://cdn.example.com/a.jpg"},
		"return":         {"page=2&search=run"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/products?page=2&search=run", resp.Header.Get("Location"))
	assert.Equal(t, 1, c.backend.count(http.MethodPost, "/products"))

	_, body := c.get(resp.Header.Get("Location"))
	assert.Contains(t, body, "Product created successfully")
}

func TestOrdersPageForwardsPageAndStatus(t *testing.T) {
	c := newConsole(t)
	c.login()

	resp, body := c.get("/admin/orders?page=2&status=pending")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req := c.backend.last(http.MethodGet, "/orders")
	require.NotNil(t, req)
	q := req.URL.Query()
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "pending", q.Get("status"))
	assert.Equal(t, "created_at", q.Get("sort_by"))
	assert.Equal(t, "desc", q.Get("sort_order"))
	assert.Equal(t, "Bearer tok-123", req.Header.Get("Authorization"))

	assert.Contains(t, body, "ORD-1001")
	assert.Contains(t, body, "ORD-1002")
	assert.Contains(t, body, "Jane Buyer")
}

func TestDeleteCategoryNeedsConfirmation(t *testing.T) {
	c := newConsole(t)
	c.login()

	resp, body := c.get("/admin/categories/c1/delete")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Are you sure you want to delete this category?")

	resp, _ = c.post("/admin/categories/c1/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Zero(t, c.backend.count(http.MethodDelete, "/categories/c1"))

	resp, _ = c.post("/admin/categories/c1/delete", url.Values{"confirm": {"yes"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/categories", resp.Header.Get("Location"))
	assert.Equal(t, 1, c.backend.count(http.MethodDelete, "/categories/c1"))

	_, body = c.get("/admin/categories")
	assert.Contains(t, body, "Category deleted successfully")
	assert.True(t, strings.Contains(body, "Shoes"))
}

func TestProductModalDefaultsToSave(t *testing.T) {
	c := newConsole(t)
	c.login()

	resp, body := c.get("/admin/products?modal=add")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	form := body[strings.Index(body, `enctype="multipart/form-data"`):]
	first := form[strings.Index(form, `name="action"`):]
	assert.True(t, strings.HasPrefix(first, `name="action" value="save"`), "first submit button in the modal must save")

	// Browsers submit the first submit button's name and value on Enter.
	resp, _ = c.post("/admin/products", url.Values{
		"action":         {"save"},
		"name":           {"Runner"},
		"price":          {"10.50"},
		"stock_quantity": {"3"},
		"category_id":    {"c1"},
		"images":         {"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		"image_url":      {"https://cdn.example.com/pending.jpg"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/products", resp.Header.Get("Location"))
	require.Equal(t, 1, c.backend.count(http.MethodPost, "/products"))

	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal(c.backend.body(http.MethodPost, "/products"), &sent))
	assert.Equal(t, "Runner", sent["name"])
	assert.Equal(t, 10.5, sent["price"])
	assert.Equal(t, []interface{}{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}, sent["images"])
}

func TestUpdateOrderStatusRedirects(t *testing.T) {
	tests := []struct {
		name         string
		form         url.Values
		wantLocation string
	}{
		{
			name:         "from detail",
			form:         url.Values{"status": {"shipped"}, "tracking_number": {"  TRK1  "}, "from": {"detail"}},
			wantLocation: "/admin/orders/o1",
		},
		{
			name:         "from list",
			form:         url.Values{"status": {"shipped"}, "tracking_number": {"  TRK1  "}, "return": {"page=2&status=pending"}},
			wantLocation: "/admin/orders?page=2&status=pending",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newConsole(t)
			c.login()

			resp, _ := c.post("/admin/orders/o1/status", tt.form)
			require.Equal(t, http.StatusSeeOther, resp.StatusCode)
			assert.Equal(t, tt.wantLocation, resp.Header.Get("Location"))
			require.Equal(t, 1, c.backend.count(http.MethodPut, "/orders/o1/status"))
			assert.JSONEq(t, `{"status":"shipped","tracking_number":"TRK1"}`,
				string(c.backend.body(http.MethodPut, "/orders/o1/status")))
		})
	}
}
