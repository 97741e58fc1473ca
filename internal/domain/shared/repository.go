package shared

// Filter represents query filter options.
// Pagination is expressed as limit/offset, which is what the HTTP API exposes.
type Filter struct {
	Limit    int
	Offset   int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Limit:    DefaultLimit,
		Offset:   0,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}

// WithFilter returns a copy of the filter with an equality condition added
func (f Filter) WithFilter(key string, value interface{}) Filter {
	filters := make(map[string]interface{}, len(f.Filters)+1)
	for k, v := range f.Filters {
		filters[k] = v
	}
	filters[key] = value
	f.Filters = filters
	return f
}

// Page is one window of a listing plus the total row count
type Page[T any] struct {
	Items  []T
	Count  int64
	Limit  int
	Offset int
}

// NewPage creates a new page
func NewPage[T any](items []T, count int64, filter Filter) Page[T] {
	return Page[T]{
		Items:  items,
		Count:  count,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
}
