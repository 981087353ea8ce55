package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/lib/validator"
	"yamdb/proj/internal/services/catalog"
)

func (app *Application) listGenresHandler(w http.ResponseWriter, r *http.Request) {
	var q filters.SearchFilter
	if err := app.decodeQuery(r, &q); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	q.Normalize()
	genres, total, err := app.services.Catalog.ListGenres(r.Context(), q.Search, q.Filters)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{
		"genres":   genres,
		"metadata": filters.CalculateMetadata(total, q.Filters),
	}, "")
}

func (app *Application) createGenreHandler(w http.ResponseWriter, r *http.Request) {
	var input createTaxonomyInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationFailed(w, r, errs)
		return
	}
	genre, err := app.services.Catalog.CreateGenre(r.Context(), input.Name, input.Slug)
	if err != nil {
		if errors.Is(err, catalog.ErrGenreExists) {
			app.Http.ValidationFailed(w, r, map[string]string{"slug": err.Error()})
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, envelop{"genre": genre}, "Genre successfully created")
}

func (app *Application) deleteGenreHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if err := app.services.Catalog.DeleteGenre(r.Context(), slug); err != nil {
		if errors.Is(err, catalog.ErrGenreNotFound) {
			app.Http.NotFound(w, r, "")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.NoContent(w, r, "Genre successfully deleted")
}
