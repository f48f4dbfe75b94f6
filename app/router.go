package main

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthCheckHandler)

	// auth
	router.HandlerFunc(http.MethodPost, "/users/login", app.loginUserHandler)
	router.HandlerFunc(http.MethodGet, "/check-auth", app.checkAuthHandler)

	// blogs
	router.HandlerFunc(http.MethodGet, "/blogs", app.listBlogsHandler)
	router.HandlerFunc(http.MethodGet, "/home/blogs", app.listRecentBlogsHandler)
	router.HandlerFunc(http.MethodGet, "/blog/:key", app.getBlogHandler)
	router.HandlerFunc(http.MethodPost, "/add/blog", app.requireAuth(app.createBlogHandler))
	router.HandlerFunc(http.MethodDelete, "/blog/:id", app.requireAuth(app.deleteBlogHandler))

	// Uploaded images are served directly when the local blob backend is
	// active; with a remote image host the stored URLs are absolute.
	if app.uploads != nil {
		router.ServeFiles(app.config.UploadURL+"/*filepath", http.Dir(app.uploads.Dir()))
	}

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   []string{app.config.CORSOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	return app.recoverPanic(corsHandler(app.rateLimit(app.logRequest(router))))
}
