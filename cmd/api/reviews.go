package main

import (
	"errors"
	"net/http"

	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/permissions"
	"yamdb/proj/internal/lib/validator"
	"yamdb/proj/internal/services/reviews"
)

type createReviewInput struct {
	Text  string `json:"text" validate:"required"`
	Score *int   `json:"score" validate:"omitempty,min=1,max=10" errorMsg:"Score must be from 1 to 10"`
}

type updateReviewInput struct {
	Text  *string `json:"text" validate:"omitempty,min=1"`
	Score *int    `json:"score" validate:"omitempty,min=1,max=10" errorMsg:"Score must be from 1 to 10"`
}

const defaultReviewScore = 5

func (app *Application) handleReviewErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, reviews.ErrTitleNotFound),
		errors.Is(err, reviews.ErrReviewNotFound),
		errors.Is(err, reviews.ErrCommentNotFound):
		app.Http.NotFound(w, r, "")
	case errors.Is(err, reviews.ErrReviewAlreadyExists):
		app.Http.BadRequest(w, r, err.Error())
	default:
		app.Http.ServerError(w, r, err, "")
	}
}

func (app *Application) listReviewsHandler(w http.ResponseWriter, r *http.Request) {
	titleID, err := app.extractIDParam(r, "titleID")
	if err != nil {
		app.Http.NotFound(w, r, err.Error())
		return
	}
	var q filters.SearchFilter
	if err := app.decodeQuery(r, &q); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	q.Normalize()
	items, total, err := app.services.Reviews.ListReviews(r.Context(), titleID, q.Filters)
	if err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{
		"reviews":  items,
		"metadata": filters.CalculateMetadata(total, q.Filters),
	}, "")
}

func (app *Application) getReviewHandler(w http.ResponseWriter, r *http.Request) {
	titleID, err := app.extractIDParam(r, "titleID")
	if err != nil {
		app.Http.NotFound(w, r, err.Error())
		return
	}
	reviewID, err := app.extractIDParam(r, "reviewID")
	if err != nil {
		app.Http.NotFound(w, r, err.Error())
		return
	}
	review, err := app.services.Reviews.GetReview(r.Context(), titleID, reviewID)
	if err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"review": review}, "")
}

func (app *Application) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	titleID, err := app.extractIDParam(r, "titleID")
	if err != nil {
		app.Http.NotFound(w, r, err.Error())
		return
	}
	var input createReviewInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationFailed(w, r, errs)
		return
	}
	score := defaultReviewScore
	if input.Score != nil {
		score = *input.Score
	}
	review, err := app.services.Reviews.CreateReview(r.Context(), titleID, app.userFromContext(r), input.Text, score)
	if err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"review": review}, "Review successfully created")
}

func (app *Application) updateReviewHandler(w http.ResponseWriter, r *http.Request) {
	titleID, err := app.extractIDParam(r, "titleID")
	if err != nil {
		app.Http.NotFound(w, r, err.Error())
		return
	}
	reviewID, err := app.extractIDParam(r, "reviewID")
	if err != nil {
		app.Http.NotFound(w, r, err.Error())
		return
	}
	review, err := app.services.Reviews.GetReview(r.Context(), titleID, reviewID)
	if err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	if !permissions.CanModifyObject(app.userFromContext(r), review.AuthorID, r.Method) {
		app.Http.Forbidden(w, r, "you can only modify your own reviews")
		return
	}
	var input updateReviewInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationFailed(w, r, errs)
		return
	}
	review, err = app.services.Reviews.UpdateReview(r.Context(), titleID, reviewID, reviews.ReviewUpdateParams{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"review": review}, "Review successfully updated")
}

func (app *Application) deleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	titleID, err := app.extractIDParam(r, "titleID")
	if err != nil {
		app.Http.NotFound(w, r, err.Error())
		return
	}
	reviewID, err := app.extractIDParam(r, "reviewID")
	if err != nil {
		app.Http.NotFound(w, r, err.Error())
		return
	}
	review, err := app.services.Reviews.GetReview(r.Context(), titleID, reviewID)
	if err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	if !permissions.CanModifyObject(app.userFromContext(r), review.AuthorID, r.Method) {
		app.Http.Forbidden(w, r, "you can only delete your own reviews")
		return
	}
	if err := app.services.Reviews.DeleteReview(r.Context(), titleID, reviewID); err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	app.Http.NoContent(w, r, "Review successfully deleted")
}
