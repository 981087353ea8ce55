package filters

type Filters struct {
	Page     int `schema:"page"`
	PageSize int `schema:"page_size"`
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Normalize clamps pagination params to sane bounds.
func (f *Filters) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
}

func (f *Filters) Limit() int {
	return f.PageSize
}

func (f *Filters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

type Metadata struct {
	CurrentPage  int `json:"current_page"`
	PageSize     int `json:"page_size"`
	LastPage     int `json:"last_page"`
	TotalRecords int `json:"total_records"`
}

func CalculateMetadata(totalRecords int, f Filters) Metadata {
	if totalRecords == 0 {
		return Metadata{}
	}
	return Metadata{
		CurrentPage:  f.Page,
		PageSize:     f.PageSize,
		LastPage:     (totalRecords + f.PageSize - 1) / f.PageSize,
		TotalRecords: totalRecords,
	}
}

// SearchFilter is the query shape for searchable list endpoints
// (categories, genres, users).
type SearchFilter struct {
	Search string `schema:"search"`
	Filters
}

// TitleFilter narrows title listings by related slugs, release year and
// name substring.
type TitleFilter struct {
	Category string `schema:"category"`
	Genre    string `schema:"genre"`
	Year     int32  `schema:"year"`
	Name     string `schema:"name"`
	Filters
}
