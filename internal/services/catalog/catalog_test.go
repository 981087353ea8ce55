package catalog

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/storage"
)

type taxonomyKind interface {
	models.Category | models.Genre
}

type fakeTaxonomy[T taxonomyKind] struct {
	items  map[string]T // by slug
	nextID int64
	build  func(id int64, name, slug string) T
	slugOf func(T) string
	nameOf func(T) string
}

func newFakeCategories() *fakeTaxonomy[models.Category] {
	return &fakeTaxonomy[models.Category]{
		items:  map[string]models.Category{},
		build:  func(id int64, name, slug string) models.Category { return models.Category{ID: id, Name: name, Slug: slug} },
		slugOf: func(c models.Category) string { return c.Slug },
		nameOf: func(c models.Category) string { return c.Name },
	}
}

func newFakeGenres() *fakeTaxonomy[models.Genre] {
	return &fakeTaxonomy[models.Genre]{
		items:  map[string]models.Genre{},
		build:  func(id int64, name, slug string) models.Genre { return models.Genre{ID: id, Name: name, Slug: slug} },
		slugOf: func(g models.Genre) string { return g.Slug },
		nameOf: func(g models.Genre) string { return g.Name },
	}
}

func (f *fakeTaxonomy[T]) List(_ context.Context, search string, _ filters.Filters) ([]T, int, error) {
	out := []T{}
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, len(out), nil
}

func (f *fakeTaxonomy[T]) GetBySlug(_ context.Context, slug string) (*T, error) {
	item, ok := f.items[slug]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &item, nil
}

func (f *fakeTaxonomy[T]) ListBySlugs(_ context.Context, slugs []string) ([]T, error) {
	out := []T{}
	for _, slug := range slugs {
		if item, ok := f.items[slug]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeTaxonomy[T]) Insert(_ context.Context, name, slug string) (*T, error) {
	for _, item := range f.items {
		if f.slugOf(item) == slug || f.nameOf(item) == name {
			return nil, storage.ErrConflict
		}
	}
	f.nextID++
	item := f.build(f.nextID, name, slug)
	f.items[slug] = item
	return &item, nil
}

func (f *fakeTaxonomy[T]) DeleteBySlug(_ context.Context, slug string) error {
	if _, ok := f.items[slug]; !ok {
		return storage.ErrNotFound
	}
	delete(f.items, slug)
	return nil
}

type insertedTitle struct {
	name       string
	year       int32
	categoryID *int64
	genreIDs   []int64
}

type fakeTitles struct {
	TitlesStorage
	inserted []insertedTitle
}

func (f *fakeTitles) Insert(_ context.Context, name string, year int32, description *string, categoryID *int64, genreIDs []int64) (*models.Title, error) {
	f.inserted = append(f.inserted, insertedTitle{name, year, categoryID, genreIDs})
	return &models.Title{ID: int64(len(f.inserted)), Name: name, Year: year, Description: description}, nil
}

func newTestService(t *testing.T) (*CatalogService, *fakeTaxonomy[models.Category], *fakeTaxonomy[models.Genre], *fakeTitles) {
	t.Helper()
	categories := newFakeCategories()
	genres := newFakeGenres()
	titles := &fakeTitles{}
	return New(slog.Default(), categories, genres, titles), categories, genres, titles
}

func TestCreateCategoryDerivesSlug(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	category, err := svc.CreateCategory(context.Background(), "Science Fiction", "")
	require.NoError(t, err)
	assert.Equal(t, "science-fiction", category.Slug)
}

func TestCreateCategoryConflict(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.CreateCategory(ctx, "Movies", "movies")
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, "Movies 2", "movies")
	assert.ErrorIs(t, err, ErrCategoryExists)
}

func TestDeleteGenreNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	assert.ErrorIs(t, svc.DeleteGenre(context.Background(), "ghost"), ErrGenreNotFound)
}

func TestCreateTitleResolvesSlugs(t *testing.T) {
	svc, _, _, titles := newTestService(t)
	ctx := context.Background()
	_, err := svc.CreateCategory(ctx, "Movies", "movies")
	require.NoError(t, err)
	_, err = svc.CreateGenre(ctx, "Drama", "drama")
	require.NoError(t, err)
	_, err = svc.CreateGenre(ctx, "Comedy", "comedy")
	require.NoError(t, err)

	_, err = svc.CreateTitle(ctx, TitleParams{
		Name:   "Some Film",
		Year:   1999,
		Category: "movies",
		Genres: []string{"drama", "comedy"},
	})
	require.NoError(t, err)
	require.Len(t, titles.inserted, 1)
	assert.NotNil(t, titles.inserted[0].categoryID)
	assert.Len(t, titles.inserted[0].genreIDs, 2)
}

func TestCreateTitleUnknownSlugs(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.CreateCategory(ctx, "Movies", "movies")
	require.NoError(t, err)

	var slugErr *SlugError
	_, err = svc.CreateTitle(ctx, TitleParams{Name: "X", Year: 1999, Category: "ghost"})
	require.ErrorAs(t, err, &slugErr)
	assert.Equal(t, "category", slugErr.Field)

	_, err = svc.CreateTitle(ctx, TitleParams{Name: "X", Year: 1999, Category: "movies", Genres: []string{"ghost"}})
	require.ErrorAs(t, err, &slugErr)
	assert.Equal(t, "genre", slugErr.Field)
}
