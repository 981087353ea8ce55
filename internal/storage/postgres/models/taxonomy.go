package models

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/storage"
)

// TaxonomyModel serves the two slug-keyed lookup tables (categories and
// genres) which share an identical shape.
type TaxonomyModel[T any] struct {
	DB    *pgxpool.Pool
	table string
}

type taxonomyRow struct {
	Count int     `db:"count"`
	ID    int64   `db:"id"`
	Name  string  `db:"name"`
	Slug  string  `db:"slug"`
}

func newTaxonomy[T any](id int64, name, slug string) T {
	var out T
	switch p := any(&out).(type) {
	case *models.Category:
		*p = models.Category{ID: id, Name: name, Slug: slug}
	case *models.Genre:
		*p = models.Genre{ID: id, Name: name, Slug: slug}
	}
	return out
}

func (m *TaxonomyModel[T]) List(ctx context.Context, search string, f filters.Filters) ([]T, int, error) {
	query := fmt.Sprintf(`
	SELECT count(*) OVER() AS count, id, name, slug FROM %s
	WHERE ($1 = '' OR name ILIKE '%%' || $1 || '%%')
	ORDER BY name, id
	LIMIT $2 OFFSET $3`, m.table)
	rows, _ := m.DB.Query(ctx, query, search, f.Limit(), f.Offset())
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[taxonomyRow])
	if err != nil {
		return nil, 0, collectErr(err)
	}
	if len(collected) == 0 {
		return []T{}, 0, nil
	}
	items := make([]T, 0, len(collected))
	for _, r := range collected {
		items = append(items, newTaxonomy[T](r.ID, r.Name, r.Slug))
	}
	return items, collected[0].Count, nil
}

func (m *TaxonomyModel[T]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	query := fmt.Sprintf("SELECT 0 AS count, id, name, slug FROM %s WHERE slug = $1", m.table)
	rows, _ := m.DB.Query(ctx, query, slug)
	r, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[taxonomyRow])
	if err != nil {
		return nil, collectErr(err)
	}
	item := newTaxonomy[T](r.ID, r.Name, r.Slug)
	return &item, nil
}

func (m *TaxonomyModel[T]) ListBySlugs(ctx context.Context, slugs []string) ([]T, error) {
	query := fmt.Sprintf("SELECT 0 AS count, id, name, slug FROM %s WHERE slug = ANY($1) ORDER BY name", m.table)
	rows, _ := m.DB.Query(ctx, query, slugs)
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[taxonomyRow])
	if err != nil {
		return nil, collectErr(err)
	}
	items := make([]T, 0, len(collected))
	for _, r := range collected {
		items = append(items, newTaxonomy[T](r.ID, r.Name, r.Slug))
	}
	return items, nil
}

func (m *TaxonomyModel[T]) Insert(ctx context.Context, name, slug string) (*T, error) {
	query := fmt.Sprintf("INSERT INTO %s (name, slug) VALUES ($1, $2) RETURNING 0 AS count, id, name, slug", m.table)
	rows, _ := m.DB.Query(ctx, query, name, slug)
	r, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[taxonomyRow])
	if err != nil {
		return nil, collectErr(err)
	}
	item := newTaxonomy[T](r.ID, r.Name, r.Slug)
	return &item, nil
}

func (m *TaxonomyModel[T]) DeleteBySlug(ctx context.Context, slug string) error {
	status, err := m.DB.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE slug = $1", m.table), slug)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
