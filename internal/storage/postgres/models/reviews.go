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

type ReviewModel struct {
	DB *pgxpool.Pool
}

type reviewRow struct {
	Count     int       `db:"count"`
	ID        int64     `db:"id"`
	TitleID   int64     `db:"title_id"`
	AuthorID  int64     `db:"author_id"`
	Author    string    `db:"author"`
	Text      string    `db:"text"`
	Score     int       `db:"score"`
	CreatedAt time.Time `db:"created_at"`
}

func (r reviewRow) toReview() models.Review {
	return models.Review{
		ID:       r.ID,
		TitleID:  r.TitleID,
		AuthorID: r.AuthorID,
		Author:   r.Author,
		Text:     r.Text,
		Score:    r.Score,
		PubDate:  r.CreatedAt,
	}
}

const reviewSelect = `
	SELECT count(*) OVER() AS count,
		r.id, r.title_id, r.author_id, u.username AS author,
		r.text, r.score, r.created_at
	FROM reviews r
	JOIN users u ON u.id = r.author_id`

func (m *ReviewModel) ListForTitle(ctx context.Context, titleID int64, f filters.Filters) ([]models.Review, int, error) {
	query := reviewSelect + `
	WHERE r.title_id = $1
	ORDER BY r.created_at DESC, r.id DESC
	LIMIT $2 OFFSET $3`
	rows, _ := m.DB.Query(ctx, query, titleID, f.Limit(), f.Offset())
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[reviewRow])
	if err != nil {
		return nil, 0, collectErr(err)
	}
	if len(collected) == 0 {
		return []models.Review{}, 0, nil
	}
	reviews := make([]models.Review, 0, len(collected))
	for _, r := range collected {
		reviews = append(reviews, r.toReview())
	}
	return reviews, collected[0].Count, nil
}

func (m *ReviewModel) Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	rows, _ := m.DB.Query(ctx, reviewSelect+" WHERE r.title_id = $1 AND r.id = $2", titleID, reviewID)
	r, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[reviewRow])
	if err != nil {
		return nil, collectErr(err)
	}
	review := r.toReview()
	return &review, nil
}

func (m *ReviewModel) Insert(ctx context.Context, titleID, authorID int64, text string, score int) (*models.Review, error) {
	var id int64
	err := m.DB.QueryRow(ctx,
		"INSERT INTO reviews (title_id, author_id, text, score) VALUES ($1, $2, $3, $4) RETURNING id",
		titleID, authorID, text, score,
	).Scan(&id)
	if err != nil {
		return nil, collectErr(err)
	}
	return m.Get(ctx, titleID, id)
}

func (m *ReviewModel) Update(ctx context.Context, review *models.Review) (*models.Review, error) {
	status, err := m.DB.Exec(ctx,
		"UPDATE reviews SET text = $1, score = $2 WHERE id = $3",
		review.Text, review.Score, review.ID,
	)
	if err != nil {
		return nil, collectErr(err)
	}
	if status.RowsAffected() == 0 {
		return nil, storage.ErrNotFound
	}
	return m.Get(ctx, review.TitleID, review.ID)
}

func (m *ReviewModel) Delete(ctx context.Context, titleID, reviewID int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM reviews WHERE title_id = $1 AND id = $2", titleID, reviewID)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
