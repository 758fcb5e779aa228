package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada-lists/internal/logging"
	"github.com/Makepad-fr/tada-lists/internal/session"
)

// testClient keeps the session cookie between requests like a browser.
type testClient struct {
	t      *testing.T
	srv    *Server
	cookie *http.Cookie
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv, err := NewServer(Options{
		Sessions: session.NewManager(session.NewMemory(), time.Hour, logging.Discard()),
		Secret:   &session.Secret{Key: []byte("test-secret")},
		Logger:   logging.Discard(),
	})
	require.NoError(t, err)
	return &testClient{t: t, srv: srv}
}

func (tc *testClient) do(req *http.Request) *httptest.ResponseRecorder {
	tc.t.Helper()
	if tc.cookie != nil {
		req.AddCookie(tc.cookie)
	}
	w := httptest.NewRecorder()
	tc.srv.Handler().ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == cookieName {
			tc.cookie = ck
		}
	}
	return w
}

func (tc *testClient) get(path string) *httptest.ResponseRecorder {
	return tc.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (tc *testClient) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return tc.do(req)
}

func (tc *testClient) xhr(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	return tc.do(req)
}

func (tc *testClient) createList(name string) {
	tc.t.Helper()
	w := tc.post("/lists", url.Values{"list_name": {name}})
	require.Equal(tc.t, http.StatusSeeOther, w.Code, w.Body.String())
}

func (tc *testClient) addTodo(listID, name string) {
	tc.t.Helper()
	w := tc.post("/lists/"+listID+"/todos", url.Values{"todo": {name}})
	require.Equal(tc.t, http.StatusSeeOther, w.Code, w.Body.String())
}

func TestRootRedirects(t *testing.T) {
	tc := newTestClient(t)
	w := tc.get("/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/lists", w.Header().Get("Location"))
}

func TestHealthz(t *testing.T) {
	tc := newTestClient(t)
	w := tc.get("/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCreateListFlow(t *testing.T) {
	tc := newTestClient(t)

	w := tc.get("/lists")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No lists yet.")

	w = tc.post("/lists", url.Values{"list_name": {"  Groceries  "}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/lists", w.Header().Get("Location"))

	w = tc.get("/lists")
	body := w.Body.String()
	assert.Contains(t, body, "Groceries")
	assert.Contains(t, body, msgListCreated)
	assert.Contains(t, body, `href="/lists/1"`)

	// flash is shown once
	w = tc.get("/lists")
	assert.NotContains(t, w.Body.String(), msgListCreated)
}

func TestCreateListValidation(t *testing.T) {
	tc := newTestClient(t)

	w := tc.post("/lists", url.Values{"list_name": {"   "}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "List name must be between 1 and 100 characters.")

	tc.createList("Groceries")
	w = tc.post("/lists", url.Values{"list_name": {"Groceries"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "List name must be unique.")
	assert.Contains(t, body, `value="Groceries"`)
}

func TestSessionsAreIsolated(t *testing.T) {
	a := newTestClient(t)
	a.createList("Mine")

	b := &testClient{t: t, srv: a.srv}
	w := b.get("/lists")
	assert.NotContains(t, w.Body.String(), "Mine")

	// a forged cookie starts a fresh session
	b.cookie = &http.Cookie{Name: cookieName, Value: a.cookie.Value + "x"}
	w = b.get("/lists")
	assert.NotContains(t, w.Body.String(), "Mine")
}

func TestUnknownListRedirects(t *testing.T) {
	tc := newTestClient(t)
	for _, path := range []string{"/lists/9", "/lists/abc", "/lists/9/edit"} {
		w := tc.get(path)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/lists", w.Header().Get("Location"))

		w = tc.get("/lists")
		assert.Contains(t, w.Body.String(), "The specified list was not found.")
	}
}

func TestRenameList(t *testing.T) {
	tc := newTestClient(t)
	tc.createList("Work")
	tc.createList("Home")

	w := tc.get("/lists/1/edit")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="Work"`)

	w = tc.post("/lists/1", url.Values{"list_name": {"Home"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "List name must be unique.")

	w = tc.post("/lists/1", url.Values{"list_name": {"Work"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "renaming to the current name is a duplicate")

	w = tc.post("/lists/1", url.Values{"list_name": {"Office"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/lists/1", w.Header().Get("Location"))

	w = tc.get("/lists/1")
	assert.Contains(t, w.Body.String(), "Office")
	assert.Contains(t, w.Body.String(), msgListUpdated)
}

func TestDeleteList(t *testing.T) {
	tc := newTestClient(t)
	tc.createList("a")
	tc.createList("b")

	w := tc.post("/lists/1/destroy", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/lists", w.Header().Get("Location"))

	w = tc.xhr("/lists/2/destroy")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/lists", w.Body.String())

	w = tc.get("/lists")
	assert.Contains(t, w.Body.String(), "No lists yet.")
	assert.Contains(t, w.Body.String(), msgListDeleted)
}

func TestTodoFlow(t *testing.T) {
	tc := newTestClient(t)
	tc.createList("Groceries")
	tc.addTodo("1", "Milk")
	tc.addTodo("1", "Eggs")

	w := tc.post("/lists/1/todos/1", url.Values{"completed": {"true"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/lists/1", w.Header().Get("Location"))

	w = tc.get("/lists/1")
	body := w.Body.String()
	assert.Contains(t, body, msgTodoUpdated)
	eggs := strings.Index(body, "<h3>Eggs</h3>")
	milk := strings.Index(body, "<h3>Milk</h3>")
	require.True(t, eggs > 0 && milk > 0)
	assert.Less(t, eggs, milk, "incomplete todos come first")

	// list overview counts
	w = tc.get("/lists")
	assert.Contains(t, w.Body.String(), "<p>1/2</p>")

	w = tc.post("/lists/1/complete_all", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	w = tc.get("/lists")
	assert.Contains(t, w.Body.String(), `class="complete"`)

	w = tc.post("/lists/1/todos/1", url.Values{"completed": {"false"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	w = tc.get("/lists")
	assert.NotContains(t, w.Body.String(), `class="complete"`)
}

func TestAddTodoValidation(t *testing.T) {
	tc := newTestClient(t)
	tc.createList("Groceries")

	w := tc.post("/lists/1/todos", url.Values{"todo": {strings.Repeat("x", 101)}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Todo must be between 1 and 100 characters.")

	w = tc.post("/lists/7/todos", url.Values{"todo": {"x"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/lists", w.Header().Get("Location"))
}

func TestDeleteTodo(t *testing.T) {
	tc := newTestClient(t)
	tc.createList("Groceries")
	tc.addTodo("1", "Milk")
	tc.addTodo("1", "Eggs")

	w := tc.post("/lists/1/todos/1/destroy", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/lists/1", w.Header().Get("Location"))

	w = tc.xhr("/lists/1/todos/2/destroy")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = tc.post("/lists/1/todos/2/destroy", nil)
	assert.Equal(t, "/lists", w.Header().Get("Location"))
	w = tc.get("/lists")
	assert.Contains(t, w.Body.String(), "The specified todo was not found.")

	w = tc.get("/lists/1")
	assert.NotContains(t, w.Body.String(), "Milk")
	assert.NotContains(t, w.Body.String(), "Eggs")
}

func TestExportPDF(t *testing.T) {
	tc := newTestClient(t)
	tc.createList("Groceries")
	tc.addTodo("1", "Milk")

	w := tc.get("/lists/1/export.pdf")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-"))
}

func TestStaticAssets(t *testing.T) {
	tc := newTestClient(t)
	w := tc.get("/javascripts/app.js")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "XMLHttpRequest")
}
