package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gerisafe/database"
	"gerisafe/database/model"
	"gerisafe/logger"
	"gerisafe/util/crypto"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSender struct {
	to      string
	subject string
	body    string
}

func (s *captureSender) Send(to, subject, body string) error {
	s.to, s.subject, s.body = to, subject, body
	return nil
}

// browser drives the engine like a cookie-keeping user agent.
type browser struct {
	t       *testing.T
	engine  *gin.Engine
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, engine *gin.Engine) *browser {
	return &browser{t: t, engine: engine, cookies: make(map[string]*http.Cookie)}
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, cookie := range b.cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	b.engine.ServeHTTP(w, req)
	for _, cookie := range w.Result().Cookies() {
		b.cookies[cookie.Name] = cookie
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, path, nil)
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	return b.do(http.MethodPost, path, form)
}

func newTestServer(t *testing.T) (*Server, *captureSender, *gin.Engine) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "gerisafe.db")
	require.NoError(t, database.InitDB(dbPath))
	t.Cleanup(func() {
		_ = database.CloseDB()
	})

	server := NewServer()
	mail := &captureSender{}
	server.mail = mail
	engine, err := server.initRouter()
	require.NoError(t, err)
	return server, mail, engine
}

func createUser(t *testing.T, email, password string) *model.User {
	t.Helper()
	hash, err := crypto.HashPasswordAsBcrypt(password)
	require.NoError(t, err)
	user := &model.User{
		Name:       "Test Clinician",
		Profession: "Pharmacist",
		Department: "Geriatrics",
		Email:      email,
		Password:   hash,
	}
	require.NoError(t, database.GetDB().Create(user).Error)
	return user
}

func TestMain(m *testing.M) {
	os.Setenv("GERISAFE_LOG_FOLDER", os.TempDir())
	logger.InitLogger(logging.ERROR)
	os.Exit(m.Run())
}

func TestPublicPages(t *testing.T) {
	_, _, engine := newTestServer(t)
	b := newBrowser(t, engine)

	tests := []struct {
		path     string
		contains string
	}{
		{"/", "Database for Medication Safety"},
		{"/home/", "Database for Medication Safety"},
		{"/about/", "About"},
		{"/drugclass/", "Benzodiazepines"},
		{"/medications/", "Digoxin"},
		{"/medications/Digoxin/", "Beers Criteria"},
		{"/drugclass/NSAIDs/", "Ibuprofen"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := b.get(tt.path)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.contains)
		})
	}
}

func TestMedicationDetailShowsClassAndSiblings(t *testing.T) {
	_, _, engine := newTestServer(t)
	b := newBrowser(t, engine)

	w := b.get("/medications/Ibuprofen/")
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "NSAIDs")
	assert.Contains(t, body, "Naproxen")
}

func TestUnknownSubjectsRenderErrorPage(t *testing.T) {
	_, _, engine := newTestServer(t)
	b := newBrowser(t, engine)

	// not-found pages are served with status 200 and the error template
	for _, path := range []string{
		"/medications/nonexistent/",
		"/drugclass/nonexistent/",
		"/no/such/route/",
	} {
		w := b.get(path)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), "Page not found", path)
	}
}

func TestProtectedRoutesRedirectToLogin(t *testing.T) {
	_, _, engine := newTestServer(t)
	b := newBrowser(t, engine)

	w := b.get("/medications/Digoxin/notes/")
	assert.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "/login/?next="), location)
	assert.Contains(t, location, url.QueryEscape("/medications/Digoxin/notes/"))
}

func TestLoginLogoutFlow(t *testing.T) {
	_, _, engine := newTestServer(t)
	b := newBrowser(t, engine)
	createUser(t, "a@x.com", "supersecret")

	// wrong password redisplays the form with the generic message
	w := b.post("/login/", url.Values{"email": {"a@x.com"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")

	// correct password returns the user to the requested page
	w = b.post("/login/", url.Values{
		"email":    {"a@x.com"},
		"password": {"supersecret"},
		"next":     {"/medications/Digoxin/notes/"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/medications/Digoxin/notes/", w.Header().Get("Location"))

	w = b.get("/medications/Digoxin/notes/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Logged in succesfully.")

	w = b.get("/logout/")
	assert.Equal(t, http.StatusFound, w.Code)

	w = b.get("/medications/Digoxin/notes/")
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestNoteSubmitFlow(t *testing.T) {
	_, _, engine := newTestServer(t)
	b := newBrowser(t, engine)
	user := createUser(t, "a@x.com", "supersecret")

	w := b.post("/login/", url.Values{"email": {"a@x.com"}, "password": {"supersecret"}})
	require.Equal(t, http.StatusFound, w.Code)

	w = b.post("/medications/Digoxin/submit_notes/", url.Values{"content": {"Monitor renal function"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Note Added")

	w = b.get("/medications/Digoxin/notes/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Monitor renal function")

	w = b.post("/medications/Digoxin/submit_notes/", url.Values{"content": {"Monitor renal function closely"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Note Updated")

	var count int64
	require.NoError(t, database.GetDB().Model(model.Note{}).
		Where("user_id = ?", user.Id).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// the form comes back prefilled with the stored note
	w = b.get("/medications/Digoxin/submit_notes/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Monitor renal function closely")
}

func TestRegisterAndConfirmFlow(t *testing.T) {
	_, mail, engine := newTestServer(t)
	b := newBrowser(t, engine)

	w := b.post("/register/", url.Values{
		"name":       {"Jane Doe"},
		"profession": {"Pharmacist"},
		"department": {"Geriatrics"},
		"email":      {"a@x.com"},
		"password":   {"supersecret"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login/", w.Header().Get("Location"))
	assert.Equal(t, "a@x.com", mail.to)
	require.Contains(t, mail.body, "/confirm_email/")

	// no account until the link is followed
	var count int64
	require.NoError(t, database.GetDB().Model(model.User{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	link := mail.body[strings.Index(mail.body, "http://"):]
	link = strings.Fields(link)[0]
	token := link[strings.Index(link, "/confirm_email/")+len("/confirm_email/"):]

	w = b.get("/confirm_email/" + token)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login/", w.Header().Get("Location"))

	require.NoError(t, database.GetDB().Model(model.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// scenario: confirmed registration can log in and lands home
	w = b.post("/login/", url.Values{"email": {"a@x.com"}, "password": {"supersecret"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = b.get("/")
	assert.Contains(t, w.Body.String(), "Logged in succesfully.")
}

func TestRegisterRejectsDuplicateEmailUpFront(t *testing.T) {
	_, mail, engine := newTestServer(t)
	b := newBrowser(t, engine)
	createUser(t, "a@x.com", "supersecret")

	w := b.post("/register/", url.Values{
		"name":       {"Jane Doe"},
		"profession": {"Pharmacist"},
		"department": {"Geriatrics"},
		"email":      {"a@x.com"},
		"password":   {"supersecret"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/register/", w.Header().Get("Location"))
	assert.Empty(t, mail.to)

	w = b.get("/register/")
	assert.Contains(t, w.Body.String(), "Email already registered!")
}

func TestInvalidConfirmationRedirectsToRegister(t *testing.T) {
	_, _, engine := newTestServer(t)
	b := newBrowser(t, engine)

	w := b.get("/confirm_email/bogus-token")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/register/", w.Header().Get("Location"))

	var count int64
	require.NoError(t, database.GetDB().Model(model.User{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
