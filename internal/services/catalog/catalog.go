package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/storage"
	"yamdb/proj/internal/utils"
)

type TaxonomyStorage[T any] interface {
	List(ctx context.Context, search string, f filters.Filters) ([]T, int, error)
	GetBySlug(ctx context.Context, slug string) (*T, error)
	ListBySlugs(ctx context.Context, slugs []string) ([]T, error)
	Insert(ctx context.Context, name, slug string) (*T, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type TitlesStorage interface {
	List(ctx context.Context, filter filters.TitleFilter) ([]models.Title, int, error)
	Get(ctx context.Context, id int64) (*models.Title, error)
	Insert(ctx context.Context, name string, year int32, description *string, categoryID *int64, genreIDs []int64) (*models.Title, error)
	Update(ctx context.Context, id int64, name string, year int32, description *string, categoryID *int64, genreIDs []int64, replaceGenres bool) (*models.Title, error)
	Delete(ctx context.Context, id int64) error
}

type CatalogService struct {
	log        *slog.Logger
	categories TaxonomyStorage[models.Category]
	genres     TaxonomyStorage[models.Genre]
	titles     TitlesStorage
}

func New(
	log *slog.Logger,
	categories TaxonomyStorage[models.Category],
	genres TaxonomyStorage[models.Genre],
	titles TitlesStorage,
) *CatalogService {
	return &CatalogService{
		log:        log,
		categories: categories,
		genres:     genres,
		titles:     titles,
	}
}

// SlugError names the slug reference a request failed to resolve.
type SlugError struct {
	Field string
	Slug  string
}

func (e *SlugError) Error() string {
	return fmt.Sprintf("unknown %s slug: %s", e.Field, e.Slug)
}

func (s *CatalogService) ListCategories(ctx context.Context, search string, f filters.Filters) ([]models.Category, int, error) {
	return s.categories.List(ctx, search, f)
}

func (s *CatalogService) CreateCategory(ctx context.Context, name, slug string) (*models.Category, error) {
	const op = "catalog.CatalogService.CreateCategory"
	log := s.log.With("op", op, "name", name)
	if slug == "" {
		slug = utils.Slugify(name)
	}
	category, err := s.categories.Insert(ctx, name, slug)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("category already exists")
			return nil, ErrCategoryExists
		}
		log.Error(err.Error())
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, slug string) error {
	const op = "catalog.CatalogService.DeleteCategory"
	if err := s.categories.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrCategoryNotFound
		}
		s.log.With("op", op).Error(err.Error())
		return err
	}
	return nil
}

func (s *CatalogService) ListGenres(ctx context.Context, search string, f filters.Filters) ([]models.Genre, int, error) {
	return s.genres.List(ctx, search, f)
}

func (s *CatalogService) CreateGenre(ctx context.Context, name, slug string) (*models.Genre, error) {
	const op = "catalog.CatalogService.CreateGenre"
	log := s.log.With("op", op, "name", name)
	if slug == "" {
		slug = utils.Slugify(name)
	}
	genre, err := s.genres.Insert(ctx, name, slug)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("genre already exists")
			return nil, ErrGenreExists
		}
		log.Error(err.Error())
		return nil, err
	}
	return genre, nil
}

func (s *CatalogService) DeleteGenre(ctx context.Context, slug string) error {
	const op = "catalog.CatalogService.DeleteGenre"
	if err := s.genres.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrGenreNotFound
		}
		s.log.With("op", op).Error(err.Error())
		return err
	}
	return nil
}

func (s *CatalogService) ListTitles(ctx context.Context, filter filters.TitleFilter) ([]models.Title, int, error) {
	return s.titles.List(ctx, filter)
}

func (s *CatalogService) GetTitle(ctx context.Context, id int64) (*models.Title, error) {
	const op = "catalog.CatalogService.GetTitle"
	title, err := s.titles.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTitleNotFound
		}
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return title, nil
}

type TitleParams struct {
	Name        string
	Year        int32
	Description *string
	Category    string   // category slug
	Genres      []string // genre slugs
}

func (s *CatalogService) resolveCategory(ctx context.Context, slug string) (*int64, error) {
	category, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &SlugError{Field: "category", Slug: slug}
		}
		return nil, err
	}
	return &category.ID, nil
}

func (s *CatalogService) resolveGenres(ctx context.Context, slugs []string) ([]int64, error) {
	genres, err := s.genres.ListBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}
	found := make(map[string]int64, len(genres))
	for _, g := range genres {
		found[g.Slug] = g.ID
	}
	ids := make([]int64, 0, len(slugs))
	for _, slug := range slugs {
		id, ok := found[slug]
		if !ok {
			return nil, &SlugError{Field: "genre", Slug: slug}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *CatalogService) CreateTitle(ctx context.Context, params TitleParams) (*models.Title, error) {
	const op = "catalog.CatalogService.CreateTitle"
	log := s.log.With("op", op, "name", params.Name, "year", params.Year)

	categoryID, err := s.resolveCategory(ctx, params.Category)
	if err != nil {
		return nil, err
	}
	genreIDs, err := s.resolveGenres(ctx, params.Genres)
	if err != nil {
		return nil, err
	}
	title, err := s.titles.Insert(ctx, params.Name, params.Year, params.Description, categoryID, genreIDs)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return title, nil
}

// TitleUpdateParams carries a partial title update; nil fields keep stored
// values.
type TitleUpdateParams struct {
	Name        *string
	Year        *int32
	Description *string
	Category    *string
	Genres      []string
}

func (s *CatalogService) UpdateTitle(ctx context.Context, id int64, params TitleUpdateParams) (*models.Title, error) {
	const op = "catalog.CatalogService.UpdateTitle"
	log := s.log.With("op", op, "id", id)

	title, err := s.GetTitle(ctx, id)
	if err != nil {
		return nil, err
	}
	name := title.Name
	if params.Name != nil {
		name = *params.Name
	}
	year := title.Year
	if params.Year != nil {
		year = *params.Year
	}
	description := title.Description
	if params.Description != nil {
		description = params.Description
	}
	var categoryID *int64
	if params.Category != nil {
		if categoryID, err = s.resolveCategory(ctx, *params.Category); err != nil {
			return nil, err
		}
	} else if title.Category != nil {
		if categoryID, err = s.resolveCategory(ctx, title.Category.Slug); err != nil {
			return nil, err
		}
	}
	var genreIDs []int64
	replaceGenres := params.Genres != nil
	if replaceGenres {
		if genreIDs, err = s.resolveGenres(ctx, params.Genres); err != nil {
			return nil, err
		}
	}
	updated, err := s.titles.Update(ctx, id, name, year, description, categoryID, genreIDs, replaceGenres)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTitleNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return updated, nil
}

func (s *CatalogService) DeleteTitle(ctx context.Context, id int64) error {
	const op = "catalog.CatalogService.DeleteTitle"
	if err := s.titles.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrTitleNotFound
		}
		s.log.With("op", op).Error(err.Error())
		return err
	}
	return nil
}
