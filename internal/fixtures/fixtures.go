// Package fixtures imports the sample CSV data set into the database,
// preserving the ids carried by the files so cross-file references stay
// intact.
package fixtures

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Load inserts every known fixture file found in fsys. Tables that already
// hold rows make the whole load fail before anything is written.
func Load(ctx context.Context, log *slog.Logger, pool *pgxpool.Pool, fsys fs.FS) error {
	const op = "fixtures.Load"
	log = log.With("op", op)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := ensureEmpty(ctx, tx); err != nil {
		return err
	}
	// Order matters: referenced tables first.
	loaders := []struct {
		file string
		fn   func(context.Context, pgx.Tx, *csv.Reader) (int, error)
	}{
		{"users.csv", loadUsers},
		{"category.csv", loadCategories},
		{"genre.csv", loadGenres},
		{"titles.csv", loadTitles},
		{"genre_title.csv", loadGenreTitles},
		{"review.csv", loadReviews},
		{"comments.csv", loadComments},
	}
	for _, l := range loaders {
		f, err := fsys.Open(l.file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Warn("fixture file missing, skipping", "file", l.file)
				continue
			}
			return err
		}
		r := csv.NewReader(f)
		n, err := l.fn(ctx, tx, r)
		f.Close()
		if err != nil {
			return fmt.Errorf("loading %s: %w", l.file, err)
		}
		log.Info("fixture loaded", "file", l.file, "rows", n)
	}
	if err := resetSequences(ctx, tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

var fixtureTables = []string{
	"users", "categories", "genres", "titles", "genre_titles", "reviews", "comments",
}

func ensureEmpty(ctx context.Context, tx pgx.Tx) error {
	for _, table := range fixtureTables {
		var count int
		if err := tx.QueryRow(ctx, "SELECT count(*) FROM "+table).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("table %s is not empty, refusing to load fixtures", table)
		}
	}
	return nil
}

// resetSequences moves every id sequence past the explicit ids the
// fixtures inserted.
func resetSequences(ctx context.Context, tx pgx.Tx) error {
	for _, table := range fixtureTables {
		q := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), coalesce(max(id), 0) + 1, false) FROM %s",
			table, table,
		)
		if _, err := tx.Exec(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// rows iterates CSV records as column-name maps, using the header row.
func rows(r *csv.Reader, fn func(rec map[string]string) error) (int, error) {
	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("reading header: %w", err)
	}
	count := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, err
		}
		rec := make(map[string]string, len(header))
		for i, col := range header {
			rec[col] = record[i]
		}
		if err := fn(rec); err != nil {
			return count, err
		}
		count++
	}
}

func atoi(rec map[string]string, col string) (int64, error) {
	v, err := strconv.ParseInt(rec[col], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", col, err)
	}
	return v, nil
}

func loadUsers(ctx context.Context, tx pgx.Tx, r *csv.Reader) (int, error) {
	return rows(r, func(rec map[string]string) error {
		id, err := atoi(rec, "id")
		if err != nil {
			return err
		}
		role := rec["role"]
		if role == "" {
			role = "user"
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO users (id, username, email, role, bio, first_name, last_name)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			id, rec["username"], rec["email"], role, rec["bio"], rec["first_name"], rec["last_name"],
		)
		return err
	})
}

func loadCategories(ctx context.Context, tx pgx.Tx, r *csv.Reader) (int, error) {
	return loadTaxonomy(ctx, tx, r, "categories")
}

func loadGenres(ctx context.Context, tx pgx.Tx, r *csv.Reader) (int, error) {
	return loadTaxonomy(ctx, tx, r, "genres")
}

func loadTaxonomy(ctx context.Context, tx pgx.Tx, r *csv.Reader, table string) (int, error) {
	return rows(r, func(rec map[string]string) error {
		id, err := atoi(rec, "id")
		if err != nil {
			return err
		}
		q := fmt.Sprintf("INSERT INTO %s (id, name, slug) VALUES ($1, $2, $3)", table)
		_, err = tx.Exec(ctx, q, id, rec["name"], rec["slug"])
		return err
	})
}

func loadTitles(ctx context.Context, tx pgx.Tx, r *csv.Reader) (int, error) {
	return rows(r, func(rec map[string]string) error {
		id, err := atoi(rec, "id")
		if err != nil {
			return err
		}
		year, err := atoi(rec, "year")
		if err != nil {
			return err
		}
		var categoryID *int64
		if rec["category"] != "" {
			v, err := atoi(rec, "category")
			if err != nil {
				return err
			}
			categoryID = &v
		}
		_, err = tx.Exec(ctx,
			"INSERT INTO titles (id, name, year, category_id) VALUES ($1, $2, $3, $4)",
			id, rec["name"], year, categoryID,
		)
		return err
	})
}

func loadGenreTitles(ctx context.Context, tx pgx.Tx, r *csv.Reader) (int, error) {
	return rows(r, func(rec map[string]string) error {
		titleID, err := atoi(rec, "title_id")
		if err != nil {
			return err
		}
		genreID, err := atoi(rec, "genre_id")
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			"INSERT INTO genre_titles (title_id, genre_id) VALUES ($1, $2)",
			titleID, genreID,
		)
		return err
	})
}

func loadReviews(ctx context.Context, tx pgx.Tx, r *csv.Reader) (int, error) {
	return rows(r, func(rec map[string]string) error {
		id, err := atoi(rec, "id")
		if err != nil {
			return err
		}
		titleID, err := atoi(rec, "title_id")
		if err != nil {
			return err
		}
		authorID, err := atoi(rec, "author")
		if err != nil {
			return err
		}
		score, err := atoi(rec, "score")
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO reviews (id, title_id, author_id, text, score, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			id, titleID, authorID, rec["text"], score, rec["pub_date"],
		)
		return err
	})
}

func loadComments(ctx context.Context, tx pgx.Tx, r *csv.Reader) (int, error) {
	return rows(r, func(rec map[string]string) error {
		id, err := atoi(rec, "id")
		if err != nil {
			return err
		}
		reviewID, err := atoi(rec, "review_id")
		if err != nil {
			return err
		}
		authorID, err := atoi(rec, "author")
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO comments (id, review_id, author_id, text, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			id, reviewID, authorID, rec["text"], rec["pub_date"],
		)
		return err
	})
}
