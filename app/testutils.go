package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/himatikom/blogserver/internal/blobstore"
	"github.com/himatikom/blogserver/internal/blogservice"
	"github.com/himatikom/blogserver/internal/docstore"
	"github.com/himatikom/blogserver/internal/userservice"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func newTestApplication(t *testing.T) (*application, docstore.Store) {
	dir := t.TempDir()

	store, err := docstore.NewFileStore(filepath.Join(dir, "state.json"))
	assert.NoError(t, err)

	uploads, err := blobstore.NewLocalStore(filepath.Join(dir, "uploads"), "/uploads")
	assert.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &Config{
		Port:        ":0",
		Environment: "test",
		CORSOrigin:  "http://localhost:3000",
		TokenSecret: "test-secret",
		UploadURL:   "/uploads",
	}

	app := &application{
		config:      cfg,
		logger:      logger,
		userService: userservice.NewUserService(store, cfg.TokenSecret, logger),
		blogService: blogservice.NewBlogService(store, uploads, logger),
		uploads:     uploads,
	}

	return app, store
}

func seedAdmin(t *testing.T, store docstore.Store, username, password string) {
	t.Helper()

	hash, err := userservice.HashPassword(password)
	assert.NoError(t, err)

	ctx := context.Background()

	doc, err := store.Load(ctx)
	assert.NoError(t, err)

	doc.Users = append(doc.Users, docstore.User{
		ID:        len(doc.Users) + 1,
		Username:  username,
		Password:  hash,
		Role:      "admin",
		CreatedAt: time.Now(),
	})

	err = store.Save(ctx, doc)
	assert.NoError(t, err)
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, []byte) {
	t.Helper()

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, res.Header, body
}

func decodeJSON(t *testing.T, body []byte, dst any) {
	t.Helper()

	err := json.Unmarshal(body, dst)
	assert.NoError(t, err, "body: %s", body)
}

// login performs a credential check and returns the session cookie.
func (ts *testServer) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()

	status, _, cookies := ts.postJSON(t, "/users/login", map[string]any{
		"username": username,
		"password": password,
	})
	assert.Equal(t, http.StatusOK, status)

	for _, cookie := range cookies {
		if cookie.Name == sessionCookieName {
			return cookie
		}
	}

	t.Fatal("no session cookie in login response")
	return nil
}

func (ts *testServer) postJSON(t *testing.T, path string, data any) (int, []byte, []*http.Cookie) {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	status, _, body := readResponse(t, res)
	return status, body, res.Cookies()
}

func (ts *testServer) get(t *testing.T, path string, cookie *http.Cookie) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	status, _, body := readResponse(t, res)
	return status, body
}

func (ts *testServer) delete(t *testing.T, path string, cookie *http.Cookie) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodDelete, ts.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	status, _, body := readResponse(t, res)
	return status, body
}

// postBlog submits the multipart create-blog form. Empty field values are
// omitted so that missing-field validation can be exercised.
func (ts *testServer) postBlog(t *testing.T, fields map[string]string, image []byte, imageContentType string, cookie *http.Cookie) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for field, value := range fields {
		if value == "" {
			continue
		}
		err := mw.WriteField(field, value)
		assert.NoError(t, err)
	}

	if image != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="image"; filename="upload.png"`)
		header.Set("Content-Type", imageContentType)

		part, err := mw.CreatePart(header)
		assert.NoError(t, err)

		_, err = part.Write(image)
		assert.NoError(t, err)
	}

	err := mw.Close()
	assert.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/add/blog", &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if cookie != nil {
		req.AddCookie(cookie)
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	status, _, body := readResponse(t, res)
	return status, body
}
