package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) getRoutesHandler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(app.recoverPanic)
	r.Use(app.rateLimit)
	r.Use(app.authenticate)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "the requested resource could not be found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		app.Http.Response(w, r, nil, "", http.StatusMethodNotAllowed)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", app.healthcheckHandler)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", app.signupHandler)
			r.Post("/token", app.issueTokenHandler)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", app.listCategoriesHandler)
			r.With(app.requireAdminOrReadOnly).Post("/", app.createCategoryHandler)
			r.With(app.requireAdminOrReadOnly).Delete("/{slug}", app.deleteCategoryHandler)
		})

		r.Route("/genres", func(r chi.Router) {
			r.Get("/", app.listGenresHandler)
			r.With(app.requireAdminOrReadOnly).Post("/", app.createGenreHandler)
			r.With(app.requireAdminOrReadOnly).Delete("/{slug}", app.deleteGenreHandler)
		})

		r.Route("/titles", func(r chi.Router) {
			r.Get("/", app.listTitlesHandler)
			r.With(app.requireAdminOrReadOnly).Post("/", app.createTitleHandler)

			r.Route("/{titleID}", func(r chi.Router) {
				r.Get("/", app.getTitleHandler)
				r.With(app.requireAdminOrReadOnly).Patch("/", app.updateTitleHandler)
				r.With(app.requireAdminOrReadOnly).Delete("/", app.deleteTitleHandler)

				r.Route("/reviews", func(r chi.Router) {
					r.Get("/", app.listReviewsHandler)
					r.With(app.requireAuthenticatedUser).Post("/", app.createReviewHandler)

					r.Route("/{reviewID}", func(r chi.Router) {
						r.Get("/", app.getReviewHandler)
						r.With(app.requireAuthenticatedUser).Patch("/", app.updateReviewHandler)
						r.With(app.requireAuthenticatedUser).Delete("/", app.deleteReviewHandler)

						r.Route("/comments", func(r chi.Router) {
							r.Get("/", app.listCommentsHandler)
							r.With(app.requireAuthenticatedUser).Post("/", app.createCommentHandler)
							r.Get("/{commentID}", app.getCommentHandler)
							r.With(app.requireAuthenticatedUser).Patch("/{commentID}", app.updateCommentHandler)
							r.With(app.requireAuthenticatedUser).Delete("/{commentID}", app.deleteCommentHandler)
						})
					})
				})
			})
		})

		r.Route("/users", func(r chi.Router) {
			// "me" must be matched before the {username} wildcard.
			r.With(app.requireAuthenticatedUser).Get("/me", app.getOwnProfileHandler)
			r.With(app.requireAuthenticatedUser).Patch("/me", app.updateOwnProfileHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.requireAdmin)
				r.Get("/", app.listUsersHandler)
				r.Post("/", app.createUserHandler)
				r.Get("/{username}", app.getUserHandler)
				r.Patch("/{username}", app.updateUserHandler)
				r.Delete("/{username}", app.deleteUserHandler)
			})
		})
	})

	return r
}
