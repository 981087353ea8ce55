package main

import (
	"errors"
	"net/http"

	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/lib/validator"
	"yamdb/proj/internal/services/catalog"
)

type createTitleInput struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        int32    `json:"year" validate:"required,releaseyear"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Category    string   `json:"category" validate:"required,slug"`
	Genre       []string `json:"genre" validate:"required,min=1,dive,slug"`
}

type updateTitleInput struct {
	Name        *string  `json:"name" validate:"omitempty,max=256"`
	Year        *int32   `json:"year" validate:"omitempty,releaseyear"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Category    *string  `json:"category" validate:"omitempty,slug"`
	Genre       []string `json:"genre" validate:"omitempty,min=1,dive,slug"`
}

// handleCatalogErr maps catalog service failures shared by the title
// handlers onto responses.
func (app *Application) handleCatalogErr(w http.ResponseWriter, r *http.Request, err error) {
	var slugErr *catalog.SlugError
	switch {
	case errors.As(err, &slugErr):
		app.Http.ValidationFailed(w, r, map[string]string{slugErr.Field: slugErr.Error()})
	case errors.Is(err, catalog.ErrTitleNotFound):
		app.Http.NotFound(w, r, "")
	default:
		app.Http.ServerError(w, r, err, "")
	}
}

func (app *Application) listTitlesHandler(w http.ResponseWriter, r *http.Request) {
	var q filters.TitleFilter
	if err := app.decodeQuery(r, &q); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	q.Normalize()
	titles, total, err := app.services.Catalog.ListTitles(r.Context(), q)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{
		"titles":   titles,
		"metadata": filters.CalculateMetadata(total, q.Filters),
	}, "")
}

func (app *Application) getTitleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.extractIDParam(r, "titleID")
	if err != nil {
		app.Http.NotFound(w, r, err.Error())
		return
	}
	title, err := app.services.Catalog.GetTitle(r.Context(), id)
	if err != nil {
		app.handleCatalogErr(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"title": title}, "")
}

func (app *Application) createTitleHandler(w http.ResponseWriter, r *http.Request) {
	var input createTitleInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationFailed(w, r, errs)
		return
	}
	title, err := app.services.Catalog.CreateTitle(r.Context(), catalog.TitleParams{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		Category:    input.Category,
		Genres:      input.Genre,
	})
	if err != nil {
		app.handleCatalogErr(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"title": title}, "Title successfully created")
}

func (app *Application) updateTitleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.extractIDParam(r, "titleID")
	if err != nil {
		app.Http.NotFound(w, r, err.Error())
		return
	}
	var input updateTitleInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationFailed(w, r, errs)
		return
	}
	title, err := app.services.Catalog.UpdateTitle(r.Context(), id, catalog.TitleUpdateParams{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		Category:    input.Category,
		Genres:      input.Genre,
	})
	if err != nil {
		app.handleCatalogErr(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"title": title}, "Title successfully updated")
}

func (app *Application) deleteTitleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.extractIDParam(r, "titleID")
	if err != nil {
		app.Http.NotFound(w, r, err.Error())
		return
	}
	if err := app.services.Catalog.DeleteTitle(r.Context(), id); err != nil {
		app.handleCatalogErr(w, r, err)
		return
	}
	app.Http.NoContent(w, r, "Title successfully deleted")
}
