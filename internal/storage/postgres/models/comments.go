package models

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/storage"
)

type CommentModel struct {
	DB *pgxpool.Pool
}

type commentRow struct {
	Count     int       `db:"count"`
	ID        int64     `db:"id"`
	ReviewID  int64     `db:"review_id"`
	AuthorID  int64     `db:"author_id"`
	Author    string    `db:"author"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`
}

func (r commentRow) toComment() models.Comment {
	return models.Comment{
		ID:       r.ID,
		ReviewID: r.ReviewID,
		AuthorID: r.AuthorID,
		Author:   r.Author,
		Text:     r.Text,
		PubDate:  r.CreatedAt,
	}
}

const commentSelect = `
	SELECT count(*) OVER() AS count,
		c.id, c.review_id, c.author_id, u.username AS author,
		c.text, c.created_at
	FROM comments c
	JOIN users u ON u.id = c.author_id`

func (m *CommentModel) ListForReview(ctx context.Context, reviewID int64, f filters.Filters) ([]models.Comment, int, error) {
	query := commentSelect + `
	WHERE c.review_id = $1
	ORDER BY c.created_at DESC, c.id DESC
	LIMIT $2 OFFSET $3`
	rows, _ := m.DB.Query(ctx, query, reviewID, f.Limit(), f.Offset())
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[commentRow])
	if err != nil {
		return nil, 0, collectErr(err)
	}
	if len(collected) == 0 {
		return []models.Comment{}, 0, nil
	}
	comments := make([]models.Comment, 0, len(collected))
	for _, r := range collected {
		comments = append(comments, r.toComment())
	}
	return comments, collected[0].Count, nil
}

func (m *CommentModel) Get(ctx context.Context, reviewID, commentID int64) (*models.Comment, error) {
	rows, _ := m.DB.Query(ctx, commentSelect+" WHERE c.review_id = $1 AND c.id = $2", reviewID, commentID)
	r, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[commentRow])
	if err != nil {
		return nil, collectErr(err)
	}
	comment := r.toComment()
	return &comment, nil
}

func (m *CommentModel) Insert(ctx context.Context, reviewID, authorID int64, text string) (*models.Comment, error) {
	var id int64
	err := m.DB.QueryRow(ctx,
		"INSERT INTO comments (review_id, author_id, text) VALUES ($1, $2, $3) RETURNING id",
		reviewID, authorID, text,
	).Scan(&id)
	if err != nil {
		return nil, collectErr(err)
	}
	return m.Get(ctx, reviewID, id)
}

func (m *CommentModel) Update(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	status, err := m.DB.Exec(ctx, "UPDATE comments SET text = $1 WHERE id = $2", comment.Text, comment.ID)
	if err != nil {
		return nil, collectErr(err)
	}
	if status.RowsAffected() == 0 {
		return nil, storage.ErrNotFound
	}
	return m.Get(ctx, comment.ReviewID, comment.ID)
}

func (m *CommentModel) Delete(ctx context.Context, reviewID, commentID int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM comments WHERE review_id = $1 AND id = $2", reviewID, commentID)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
