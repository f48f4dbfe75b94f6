package main

import (
	"errors"
	"io"
	"net/http"

	"github.com/himatikom/blogserver/internal/blogservice"
	"github.com/himatikom/blogserver/internal/common"
	"github.com/himatikom/blogserver/internal/userservice"
)

const maxUploadBytes = 10 << 20

type loginUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (app *application) loginUserHandler(w http.ResponseWriter, r *http.Request) {
	var input loginUserRequest

	// Parse the request body
	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	// Call the user service
	token, err := app.userService.Login(r.Context(), input.Username, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrAuthenticationFailure):
			app.invalidCredentialsErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	// The token travels in the cookie only, never in the body.
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(userservice.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "login successful"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) checkAuthHandler(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		err = app.writeJSON(w, http.StatusUnauthorized, envelope{"loggedIn": false, "error": "authentication token not found"}, nil)
		if err != nil {
			app.logError(r, err)
		}
		return
	}

	claims, err := app.userService.VerifyToken(cookie.Value)
	if err != nil {
		err = app.writeJSON(w, http.StatusForbidden, envelope{"loggedIn": false, "error": "invalid or expired token"}, nil)
		if err != nil {
			app.logError(r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{
		"loggedIn": true,
		"user": envelope{
			"id":       claims.UserID,
			"username": claims.Username,
		},
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) listBlogsHandler(w http.ResponseWriter, r *http.Request) {
	blogs := app.blogService.ListSummaries(r.Context())

	err := app.writeJSON(w, http.StatusOK, blogs, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) listRecentBlogsHandler(w http.ResponseWriter, r *http.Request) {
	blogs := app.blogService.ListRecent(r.Context(), 3)

	err := app.writeJSON(w, http.StatusOK, blogs, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getBlogHandler(w http.ResponseWriter, r *http.Request) {
	// A key that does not parse as an integer can never match a post.
	id, err := app.readIDParam(r, "key")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	blog, err := app.blogService.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, blog, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) createBlogHandler(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(maxUploadBytes)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	req := &blogservice.CreateBlogRequest{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
		Author:  r.FormValue("author"),
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		req.Image = data
		req.ImageContentType = header.Header.Get("Content-Type")
	case errors.Is(err, http.ErrMissingFile):
		// image is optional
	default:
		app.badRequestErrorResponse(w, r, err)
		return
	}

	// Call the blog service
	blog, err := app.blogService.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			app.badRequestErrorResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, blog, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) deleteBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	// Call the blog service
	err = app.blogService.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "blog deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
