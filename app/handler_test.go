package main

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginUserHandler(t *testing.T) {
	tests := []struct {
		name       string
		payload    map[string]any
		wantStatus int
		wantBody   map[string]any
		wantCookie bool
	}{
		{
			name:       "Valid Credentials",
			payload:    map[string]any{"username": "admin", "password": "Sup3r_secret!"},
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"message": "login successful"},
			wantCookie: true,
		},
		{
			name:       "Wrong Password",
			payload:    map[string]any{"username": "admin", "password": "wrong"},
			wantStatus: http.StatusUnauthorized,
			wantBody:   map[string]any{"error": "invalid username or password"},
		},
		{
			name:       "Unknown Username",
			payload:    map[string]any{"username": "nobody", "password": "Sup3r_secret!"},
			wantStatus: http.StatusUnauthorized,
			wantBody:   map[string]any{"error": "invalid username or password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, store := newTestApplication(t)
			seedAdmin(t, store, "admin", "Sup3r_secret!")

			ts := newTestServer(t, app.routes())

			status, body, cookies := ts.postJSON(t, "/users/login", tt.payload)
			assert.Equal(t, tt.wantStatus, status)

			var got map[string]any
			decodeJSON(t, body, &got)
			assert.Equal(t, tt.wantBody, got)

			var sessionCookie *http.Cookie
			for _, cookie := range cookies {
				if cookie.Name == sessionCookieName {
					sessionCookie = cookie
				}
			}

			if !tt.wantCookie {
				assert.Nil(t, sessionCookie)
				return
			}

			assert.NotNil(t, sessionCookie)
			assert.True(t, sessionCookie.HttpOnly)
			assert.True(t, sessionCookie.Secure)
			assert.Equal(t, http.SameSiteNoneMode, sessionCookie.SameSite)
			assert.Equal(t, 3600, sessionCookie.MaxAge)
		})
	}
}

func TestLoginFailureBodiesAreIdentical(t *testing.T) {
	app, store := newTestApplication(t)
	seedAdmin(t, store, "admin", "Sup3r_secret!")

	ts := newTestServer(t, app.routes())

	wrongPwdStatus, wrongPwdBody, _ := ts.postJSON(t, "/users/login", map[string]any{"username": "admin", "password": "bad"})
	unknownStatus, unknownBody, _ := ts.postJSON(t, "/users/login", map[string]any{"username": "ghost", "password": "bad"})

	assert.Equal(t, http.StatusUnauthorized, wrongPwdStatus)
	assert.Equal(t, wrongPwdStatus, unknownStatus)
	assert.Equal(t, string(wrongPwdBody), string(unknownBody))
}

func TestCheckAuthHandler(t *testing.T) {
	app, store := newTestApplication(t)
	seedAdmin(t, store, "admin", "Sup3r_secret!")

	ts := newTestServer(t, app.routes())

	t.Run("No Cookie", func(t *testing.T) {
		status, body := ts.get(t, "/check-auth", nil)
		assert.Equal(t, http.StatusUnauthorized, status)

		var got map[string]any
		decodeJSON(t, body, &got)
		assert.Equal(t, false, got["loggedIn"])
		assert.NotEmpty(t, got["error"])
	})

	t.Run("Tampered Token", func(t *testing.T) {
		cookie := &http.Cookie{Name: sessionCookieName, Value: "tampered"}

		status, body := ts.get(t, "/check-auth", cookie)
		assert.Equal(t, http.StatusForbidden, status)

		var got map[string]any
		decodeJSON(t, body, &got)
		assert.Equal(t, false, got["loggedIn"])
	})

	t.Run("Valid Token", func(t *testing.T) {
		cookie := ts.login(t, "admin", "Sup3r_secret!")

		status, body := ts.get(t, "/check-auth", cookie)
		assert.Equal(t, http.StatusOK, status)

		var got struct {
			LoggedIn bool `json:"loggedIn"`
			User     struct {
				ID       int    `json:"id"`
				Username string `json:"username"`
			} `json:"user"`
		}
		decodeJSON(t, body, &got)
		assert.True(t, got.LoggedIn)
		assert.Equal(t, 1, got.User.ID)
		assert.Equal(t, "admin", got.User.Username)
	})
}

func TestCreateBlogHandler(t *testing.T) {
	tests := []struct {
		name       string
		fields     map[string]string
		wantStatus int
	}{
		{
			name:       "Valid Request",
			fields:     map[string]string{"title": "A Post", "content": "body", "author": "admin"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "Missing Title",
			fields:     map[string]string{"content": "body", "author": "admin"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Missing Content",
			fields:     map[string]string{"title": "A Post", "author": "admin"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Missing Author",
			fields:     map[string]string{"title": "A Post", "content": "body"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, store := newTestApplication(t)
			seedAdmin(t, store, "admin", "Sup3r_secret!")

			ts := newTestServer(t, app.routes())
			cookie := ts.login(t, "admin", "Sup3r_secret!")

			status, body := ts.postBlog(t, tt.fields, nil, "", cookie)
			assert.Equal(t, tt.wantStatus, status, "body: %s", body)
		})
	}
}

func TestCreateBlogWithImage(t *testing.T) {
	app, store := newTestApplication(t)
	seedAdmin(t, store, "admin", "Sup3r_secret!")

	ts := newTestServer(t, app.routes())
	cookie := ts.login(t, "admin", "Sup3r_secret!")

	fields := map[string]string{"title": "Illustrated", "content": "body", "author": "admin"}
	status, body := ts.postBlog(t, fields, []byte("fake image bytes"), "image/png", cookie)
	assert.Equal(t, http.StatusCreated, status)

	var created struct {
		ID       int     `json:"id"`
		ImageURL *string `json:"image_url"`
	}
	decodeJSON(t, body, &created)
	assert.NotNil(t, created.ImageURL)

	// The stored image is reachable through the static file route.
	imgStatus, imgBody := ts.get(t, *created.ImageURL, nil)
	assert.Equal(t, http.StatusOK, imgStatus)
	assert.Equal(t, "fake image bytes", string(imgBody))
}

func TestBlogLifecycle(t *testing.T) {
	app, store := newTestApplication(t)
	seedAdmin(t, store, "admin", "Sup3r_secret!")

	ts := newTestServer(t, app.routes())
	cookie := ts.login(t, "admin", "Sup3r_secret!")

	// Create without an image.
	fields := map[string]string{"title": "Hello World", "content": "first post", "author": "admin"}
	status, body := ts.postBlog(t, fields, nil, "", cookie)
	assert.Equal(t, http.StatusCreated, status)

	var created struct {
		ID       int             `json:"id"`
		Slug     string          `json:"slug"`
		ImageURL json.RawMessage `json:"image_url"`
	}
	decodeJSON(t, body, &created)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "hello-world", created.Slug)
	assert.Equal(t, "null", string(created.ImageURL))

	// Delete it.
	status, body = ts.delete(t, "/blog/1", cookie)
	assert.Equal(t, http.StatusOK, status)

	var deleted map[string]any
	decodeJSON(t, body, &deleted)
	assert.Equal(t, "blog deleted", deleted["message"])

	// It is gone.
	status, _ = ts.get(t, "/blog/1", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestListBlogsHandler(t *testing.T) {
	app, store := newTestApplication(t)
	seedAdmin(t, store, "admin", "Sup3r_secret!")

	ts := newTestServer(t, app.routes())
	cookie := ts.login(t, "admin", "Sup3r_secret!")

	t.Run("Empty Collection", func(t *testing.T) {
		status, body := ts.get(t, "/blogs", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, "[]", string(body))
	})

	for _, title := range []string{"One", "Two", "Three", "Four"} {
		fields := map[string]string{"title": title, "content": "body", "author": "admin"}
		status, _ := ts.postBlog(t, fields, nil, "", cookie)
		assert.Equal(t, http.StatusCreated, status)
	}

	t.Run("All Blogs", func(t *testing.T) {
		status, body := ts.get(t, "/blogs", nil)
		assert.Equal(t, http.StatusOK, status)

		var summaries []map[string]any
		decodeJSON(t, body, &summaries)
		assert.Len(t, summaries, 4)

		for _, summary := range summaries {
			assert.NotContains(t, summary, "content")
			assert.NotContains(t, summary, "updated_at")
			assert.NotContains(t, summary, "image_public_id")
		}
	})

	t.Run("Recent Blogs Capped At Three", func(t *testing.T) {
		status, body := ts.get(t, "/home/blogs", nil)
		assert.Equal(t, http.StatusOK, status)

		var summaries []map[string]any
		decodeJSON(t, body, &summaries)
		assert.Len(t, summaries, 3)
	})
}

func TestGetBlogHandler(t *testing.T) {
	app, store := newTestApplication(t)
	seedAdmin(t, store, "admin", "Sup3r_secret!")

	ts := newTestServer(t, app.routes())
	cookie := ts.login(t, "admin", "Sup3r_secret!")

	fields := map[string]string{"title": "Readable", "content": "the full body", "author": "admin"}
	status, _ := ts.postBlog(t, fields, nil, "", cookie)
	assert.Equal(t, http.StatusCreated, status)

	t.Run("Existing Blog", func(t *testing.T) {
		status, body := ts.get(t, "/blog/1", nil)
		assert.Equal(t, http.StatusOK, status)

		var blog map[string]any
		decodeJSON(t, body, &blog)
		assert.Equal(t, "the full body", blog["content"])
	})

	t.Run("Unknown ID", func(t *testing.T) {
		status, body := ts.get(t, "/blog/99", nil)
		assert.Equal(t, http.StatusNotFound, status)

		var got map[string]any
		decodeJSON(t, body, &got)
		assert.NotEmpty(t, got["error"])
	})

	t.Run("Non-Numeric Key", func(t *testing.T) {
		status, _ := ts.get(t, "/blog/readable", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestDeleteBlogUnknownID(t *testing.T) {
	app, store := newTestApplication(t)
	seedAdmin(t, store, "admin", "Sup3r_secret!")

	ts := newTestServer(t, app.routes())
	cookie := ts.login(t, "admin", "Sup3r_secret!")

	status, body := ts.delete(t, "/blog/42", cookie)
	assert.Equal(t, http.StatusNotFound, status)

	var got map[string]any
	decodeJSON(t, body, &got)
	assert.NotEmpty(t, got["error"])
}
