package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/lib/validator"
	"yamdb/proj/internal/services/users"
)

type createUserInput struct {
	Username  string `json:"username" validate:"required,max=150,username,reserved"`
	Email     string `json:"email" validate:"required,max=254,email"`
	Role      string `json:"role" validate:"omitempty,oneof=user moderator admin"`
	Bio       string `json:"bio" validate:"omitempty,max=1000"`
	FirstName string `json:"first_name" validate:"omitempty,max=150"`
	LastName  string `json:"last_name" validate:"omitempty,max=150"`
}

type updateUserInput struct {
	Username  *string `json:"username" validate:"omitempty,max=150,username,reserved"`
	Email     *string `json:"email" validate:"omitempty,max=254,email"`
	Role      *string `json:"role" validate:"omitempty,oneof=user moderator admin"`
	Bio       *string `json:"bio" validate:"omitempty,max=1000"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
}

func (app *Application) handleUserErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		app.Http.NotFound(w, r, "")
	case errors.Is(err, users.ErrUserAlreadyExists):
		app.Http.ValidationFailed(w, r, map[string]string{"username": err.Error()})
	default:
		app.Http.ServerError(w, r, err, "")
	}
}

func (app *Application) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	var q filters.SearchFilter
	if err := app.decodeQuery(r, &q); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	q.Normalize()
	items, total, err := app.services.Users.List(r.Context(), q.Search, q.Filters)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{
		"users":    items,
		"metadata": filters.CalculateMetadata(total, q.Filters),
	}, "")
}

func (app *Application) getUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := app.services.Users.Get(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		app.handleUserErr(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "")
}

func (app *Application) createUserHandler(w http.ResponseWriter, r *http.Request) {
	var input createUserInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationFailed(w, r, errs)
		return
	}
	user, err := app.services.Users.Create(r.Context(), users.CreateParams{
		Username:  input.Username,
		Email:     input.Email,
		Role:      input.Role,
		Bio:       input.Bio,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	})
	if err != nil {
		app.handleUserErr(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"user": user}, "User successfully created")
}

func (app *Application) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	var input updateUserInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationFailed(w, r, errs)
		return
	}
	user, err := app.services.Users.Update(r.Context(), chi.URLParam(r, "username"), users.UpdateParams{
		Username:  input.Username,
		Email:     input.Email,
		Role:      input.Role,
		Bio:       input.Bio,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	})
	if err != nil {
		app.handleUserErr(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "User successfully updated")
}

func (app *Application) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.services.Users.Delete(r.Context(), chi.URLParam(r, "username")); err != nil {
		app.handleUserErr(w, r, err)
		return
	}
	app.Http.NoContent(w, r, "User successfully deleted")
}

func (app *Application) getOwnProfileHandler(w http.ResponseWriter, r *http.Request) {
	app.Http.Ok(w, r, envelop{"user": app.userFromContext(r)}, "")
}

// updateOwnProfileHandler accepts the same payload as the admin update but
// never changes the caller's role.
func (app *Application) updateOwnProfileHandler(w http.ResponseWriter, r *http.Request) {
	var input updateUserInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationFailed(w, r, errs)
		return
	}
	user, err := app.services.Users.UpdateMe(r.Context(), app.userFromContext(r), users.UpdateParams{
		Username:  input.Username,
		Email:     input.Email,
		Role:      input.Role,
		Bio:       input.Bio,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	})
	if err != nil {
		app.handleUserErr(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "Profile successfully updated")
}
