package main

import (
	"errors"
	"net/http"

	"yamdb/proj/internal/lib/validator"
	"yamdb/proj/internal/services/auth"
)

type signupInput struct {
	Username string `json:"username" validate:"required,max=150,username,reserved"`
	Email    string `json:"email" validate:"required,max=254,email"`
}

type issueTokenInput struct {
	Username         string `json:"username" validate:"required,max=150"`
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
}

func (app *Application) signupHandler(w http.ResponseWriter, r *http.Request) {
	var input signupInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationFailed(w, r, errs)
		return
	}
	user, err := app.services.Auth.Signup(r.Context(), input.Username, input.Email)
	if err != nil {
		var identityErr *auth.IdentityError
		if errors.As(err, &identityErr) {
			app.Http.ValidationFailed(w, r, identityErr.Fields)
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{
		"username": user.Username,
		"email":    user.Email,
	}, "Confirmation code sent")
}

func (app *Application) issueTokenHandler(w http.ResponseWriter, r *http.Request) {
	var input issueTokenInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationFailed(w, r, errs)
		return
	}
	token, err := app.services.Auth.IssueToken(r.Context(), input.Username, input.ConfirmationCode)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			app.Http.NotFound(w, r, "")
		case errors.Is(err, auth.ErrInvalidConfirmationCode):
			app.Http.ValidationFailed(w, r, map[string]string{"confirmation_code": err.Error()})
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, envelop{"token": token}, "")
}
