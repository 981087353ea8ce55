package models

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/storage"
)

type TitleModel struct {
	DB *pgxpool.Pool
}

// rating is computed at query time as the mean review score; NULL when the
// title has no reviews yet.
const titleSelect = `
	SELECT count(*) OVER() AS count,
		t.id, t.name, t.year, t.description,
		c.name AS category_name, c.slug AS category_slug,
		avg(r.score) AS rating
	FROM titles t
	LEFT JOIN categories c ON c.id = t.category_id
	LEFT JOIN reviews r ON r.title_id = t.id`

type titleRow struct {
	Count        int      `db:"count"`
	ID           int64    `db:"id"`
	Name         string   `db:"name"`
	Year         int32    `db:"year"`
	Description  *string  `db:"description"`
	CategoryName *string  `db:"category_name"`
	CategorySlug *string  `db:"category_slug"`
	Rating       *float64 `db:"rating"`
}

func (r titleRow) toTitle() models.Title {
	t := models.Title{
		ID:          r.ID,
		Name:        r.Name,
		Year:        r.Year,
		Description: r.Description,
		Rating:      r.Rating,
		Genres:      []models.Genre{},
	}
	if r.CategorySlug != nil {
		t.Category = &models.Category{Name: *r.CategoryName, Slug: *r.CategorySlug}
	}
	return t
}

func (m *TitleModel) List(ctx context.Context, filter filters.TitleFilter) ([]models.Title, int, error) {
	query := titleSelect + `
	WHERE ($1 = '' OR c.slug = $1)
		AND ($2 = '' OR EXISTS (
			SELECT 1 FROM genre_titles gt
			JOIN genres g ON g.id = gt.genre_id
			WHERE gt.title_id = t.id AND g.slug = $2))
		AND ($3 = 0 OR t.year = $3)
		AND ($4 = '' OR t.name ILIKE '%' || $4 || '%')
	GROUP BY t.id, c.name, c.slug
	ORDER BY t.name, t.id
	LIMIT $5 OFFSET $6`
	rows, _ := m.DB.Query(ctx, query,
		filter.Category, filter.Genre, filter.Year, filter.Name,
		filter.Limit(), filter.Offset(),
	)
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[titleRow])
	if err != nil {
		return nil, 0, collectErr(err)
	}
	if len(collected) == 0 {
		return []models.Title{}, 0, nil
	}
	titles := make([]models.Title, 0, len(collected))
	ids := make([]int64, 0, len(collected))
	for _, r := range collected {
		titles = append(titles, r.toTitle())
		ids = append(ids, r.ID)
	}
	if err := m.attachGenres(ctx, titles, ids); err != nil {
		return nil, 0, err
	}
	return titles, collected[0].Count, nil
}

func (m *TitleModel) Get(ctx context.Context, id int64) (*models.Title, error) {
	query := titleSelect + `
	WHERE t.id = $1
	GROUP BY t.id, c.name, c.slug`
	rows, _ := m.DB.Query(ctx, query, id)
	r, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[titleRow])
	if err != nil {
		return nil, collectErr(err)
	}
	title := r.toTitle()
	titles := []models.Title{title}
	if err := m.attachGenres(ctx, titles, []int64{id}); err != nil {
		return nil, err
	}
	return &titles[0], nil
}

type titleGenreRow struct {
	TitleID int64  `db:"title_id"`
	Name    string `db:"name"`
	Slug    string `db:"slug"`
}

func (m *TitleModel) attachGenres(ctx context.Context, titles []models.Title, ids []int64) error {
	rows, _ := m.DB.Query(ctx, `
	SELECT gt.title_id, g.name, g.slug FROM genre_titles gt
	JOIN genres g ON g.id = gt.genre_id
	WHERE gt.title_id = ANY($1)
	ORDER BY g.name`, ids)
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[titleGenreRow])
	if err != nil {
		return collectErr(err)
	}
	byTitle := make(map[int64][]models.Genre, len(titles))
	for _, r := range collected {
		byTitle[r.TitleID] = append(byTitle[r.TitleID], models.Genre{Name: r.Name, Slug: r.Slug})
	}
	for i := range titles {
		if genres, ok := byTitle[titles[i].ID]; ok {
			titles[i].Genres = genres
		}
	}
	return nil
}

func (m *TitleModel) Insert(ctx context.Context, name string, year int32, description *string, categoryID *int64, genreIDs []int64) (*models.Title, error) {
	tx, err := m.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx,
		"INSERT INTO titles (name, year, description, category_id) VALUES ($1, $2, $3, $4) RETURNING id",
		name, year, description, categoryID,
	).Scan(&id)
	if err != nil {
		return nil, collectErr(err)
	}
	if err := insertTitleGenres(ctx, tx, id, genreIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return m.Get(ctx, id)
}

func (m *TitleModel) Update(ctx context.Context, id int64, name string, year int32, description *string, categoryID *int64, genreIDs []int64, replaceGenres bool) (*models.Title, error) {
	tx, err := m.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	status, err := tx.Exec(ctx,
		"UPDATE titles SET name = $1, year = $2, description = $3, category_id = $4 WHERE id = $5",
		name, year, description, categoryID, id,
	)
	if err != nil {
		return nil, collectErr(err)
	}
	if status.RowsAffected() == 0 {
		return nil, storage.ErrNotFound
	}
	if replaceGenres {
		if _, err := tx.Exec(ctx, "DELETE FROM genre_titles WHERE title_id = $1", id); err != nil {
			return nil, err
		}
		if err := insertTitleGenres(ctx, tx, id, genreIDs); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return m.Get(ctx, id)
}

func insertTitleGenres(ctx context.Context, tx pgx.Tx, titleID int64, genreIDs []int64) error {
	for _, genreID := range genreIDs {
		_, err := tx.Exec(ctx,
			"INSERT INTO genre_titles (title_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			titleID, genreID,
		)
		if err != nil {
			return collectErr(err)
		}
	}
	return nil
}

func (m *TitleModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM titles WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
