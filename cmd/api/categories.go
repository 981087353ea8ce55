package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/lib/validator"
	"yamdb/proj/internal/services/catalog"
)

type createTaxonomyInput struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"omitempty,max=50,slug"`
}

func (app *Application) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	var q filters.SearchFilter
	if err := app.decodeQuery(r, &q); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	q.Normalize()
	categories, total, err := app.services.Catalog.ListCategories(r.Context(), q.Search, q.Filters)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{
		"categories": categories,
		"metadata":   filters.CalculateMetadata(total, q.Filters),
	}, "")
}

func (app *Application) createCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var input createTaxonomyInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationFailed(w, r, errs)
		return
	}
	category, err := app.services.Catalog.CreateCategory(r.Context(), input.Name, input.Slug)
	if err != nil {
		if errors.Is(err, catalog.ErrCategoryExists) {
			app.Http.ValidationFailed(w, r, map[string]string{"slug": err.Error()})
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, envelop{"category": category}, "Category successfully created")
}

func (app *Application) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if err := app.services.Catalog.DeleteCategory(r.Context(), slug); err != nil {
		if errors.Is(err, catalog.ErrCategoryNotFound) {
			app.Http.NotFound(w, r, "")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.NoContent(w, r, "Category successfully deleted")
}
