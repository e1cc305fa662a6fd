// SPDX-License-Identifier: Apache-2.0

package http

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withMetrics)
	router.Use(h.withSecurityHeaders)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.serverCfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization", "X-Trace-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(httprate.LimitByIP(h.serverCfg.RateLimitPerMinute, time.Minute))
	if h.serverCfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.serverCfg.RequestTimeout))
	}

	router.Get("/healthz", h.healthz)
	router.Handle("/metrics", promhttp.Handler())

	// registration and login sit behind a much tighter rate bucket
	router.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(h.serverCfg.AuthRateLimitPerMinute, time.Minute))

		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	// public reads
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getVersion)

		r.Get("/api/posts", h.listPosts)
		r.Get("/api/posts/{postID}", h.getPost)
		r.Get("/api/posts/{postID}/comments", h.listPostComments)
		r.Get("/api/comments/{commentID}", h.getComment)
		r.Get("/api/users/{username}/posts", h.listUserPosts)
		r.Get("/api/profiles/{username}", h.getProfile)

		r.Get("/api/authors", h.listAuthors)
		r.Get("/api/authors/top-rated", h.topRatedAuthors)
		r.Get("/api/authors/{authorID}", h.getAuthor)
		r.Get("/api/authors/{authorID}/books", h.listAuthorBooks)
		r.Get("/api/authors/{authorID}/statistics", h.getAuthorStatistics)

		r.Get("/api/books", h.listBooks)
		r.Get("/api/books/recent", h.recentBooks)
		r.Get("/api/books/in-stock", h.inStockBooks)
		r.Get("/api/books/by-genre", h.booksByGenre)
		r.Get("/api/books/price-range", h.booksByPriceRange)
		r.Get("/api/books/search", h.searchBooks)
		r.Get("/api/books/{bookID}", h.getBook)
	})

	// routes requiring authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/users/me", h.currentUser)

		r.Post("/api/posts", h.createPost)
		r.Put("/api/posts/{postID}", h.updatePost)
		r.Patch("/api/posts/{postID}", h.updatePost)
		r.Delete("/api/posts/{postID}", h.deletePost)

		r.Post("/api/posts/{postID}/comments", h.createComment)
		r.Put("/api/comments/{commentID}", h.updateComment)
		r.Patch("/api/comments/{commentID}", h.updateComment)
		r.Delete("/api/comments/{commentID}", h.deleteComment)

		r.Post("/api/follow/{userID}", h.follow)
		r.Post("/api/unfollow/{userID}", h.unfollow)
		r.Get("/api/feed", h.feed)

		r.Post("/api/authors", h.createAuthor)
		r.Put("/api/authors/{authorID}", h.updateAuthor)
		r.Patch("/api/authors/{authorID}", h.updateAuthor)
		r.Delete("/api/authors/{authorID}", h.deleteAuthor)

		r.Post("/api/books", h.createBook)
		r.Put("/api/books/{bookID}", h.updateBook)
		r.Patch("/api/books/{bookID}", h.updateBook)
		r.Delete("/api/books/{bookID}", h.deleteBook)
	})

	return router
}
