package models

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/storage"
	"yamdb/proj/internal/storage/postgres"
)

type Models struct {
	Users      *UserModel
	Categories *TaxonomyModel[models.Category]
	Genres     *TaxonomyModel[models.Genre]
	Titles     *TitleModel
	Reviews    *ReviewModel
	Comments   *CommentModel
}

func New(db *postgres.Storage) *Models {
	return &Models{
		Users:      &UserModel{db.Conn},
		Categories: &TaxonomyModel[models.Category]{DB: db.Conn, table: "categories"},
		Genres:     &TaxonomyModel[models.Genre]{DB: db.Conn, table: "genres"},
		Titles:     &TitleModel{db.Conn},
		Reviews:    &ReviewModel{db.Conn},
		Comments:   &CommentModel{db.Conn},
	}
}

// collectErr maps driver errors onto the storage sentinel errors.
func collectErr(err error) error {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return storage.ErrNotFound
	case errors.As(err, &pgErr) && pgErr.Code == postgres.ErrConflictCode:
		return storage.ErrConflict
	}
	return err
}
