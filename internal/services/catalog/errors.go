package catalog

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrTitleNotFound    = errors.New("title not found")
	ErrCategoryExists   = errors.New("category with this name or slug already exists")
	ErrGenreExists      = errors.New("genre with this name or slug already exists")
)
