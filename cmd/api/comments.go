package main

import (
	"net/http"

	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/permissions"
	"yamdb/proj/internal/lib/validator"
)

type commentInput struct {
	Text string `json:"text" validate:"required"`
}

// commentPath extracts the three-level review-comment path parameters.
func (app *Application) commentPath(r *http.Request, withComment bool) (titleID, reviewID, commentID int64, err error) {
	if titleID, err = app.extractIDParam(r, "titleID"); err != nil {
		return
	}
	if reviewID, err = app.extractIDParam(r, "reviewID"); err != nil {
		return
	}
	if withComment {
		commentID, err = app.extractIDParam(r, "commentID")
	}
	return
}

func (app *Application) listCommentsHandler(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, _, err := app.commentPath(r, false)
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
	comments, total, err := app.services.Reviews.ListComments(r.Context(), titleID, reviewID, q.Filters)
	if err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{
		"comments": comments,
		"metadata": filters.CalculateMetadata(total, q.Filters),
	}, "")
}

func (app *Application) getCommentHandler(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, commentID, err := app.commentPath(r, true)
	if err != nil {
		app.Http.NotFound(w, r, err.Error())
		return
	}
	comment, err := app.services.Reviews.GetComment(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"comment": comment}, "")
}

func (app *Application) createCommentHandler(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, _, err := app.commentPath(r, false)
	if err != nil {
		app.Http.NotFound(w, r, err.Error())
		return
	}
	var input commentInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationFailed(w, r, errs)
		return
	}
	comment, err := app.services.Reviews.CreateComment(r.Context(), titleID, reviewID, app.userFromContext(r), input.Text)
	if err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"comment": comment}, "Comment successfully created")
}

func (app *Application) updateCommentHandler(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, commentID, err := app.commentPath(r, true)
	if err != nil {
		app.Http.NotFound(w, r, err.Error())
		return
	}
	comment, err := app.services.Reviews.GetComment(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	if !permissions.CanModifyObject(app.userFromContext(r), comment.AuthorID, r.Method) {
		app.Http.Forbidden(w, r, "you can only modify your own comments")
		return
	}
	var input commentInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationFailed(w, r, errs)
		return
	}
	comment, err = app.services.Reviews.UpdateComment(r.Context(), titleID, reviewID, commentID, input.Text)
	if err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"comment": comment}, "Comment successfully updated")
}

func (app *Application) deleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, commentID, err := app.commentPath(r, true)
	if err != nil {
		app.Http.NotFound(w, r, err.Error())
		return
	}
	comment, err := app.services.Reviews.GetComment(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	if !permissions.CanModifyObject(app.userFromContext(r), comment.AuthorID, r.Method) {
		app.Http.Forbidden(w, r, "you can only delete your own comments")
		return
	}
	if err := app.services.Reviews.DeleteComment(r.Context(), titleID, reviewID, commentID); err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	app.Http.NoContent(w, r, "Comment successfully deleted")
}
