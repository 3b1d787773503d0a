package pagination

const (
	// DefaultPerPage is the page size used when the config document carries none.
	DefaultPerPage = 20
	// MaxPerPage caps how many items any listing can request.
	MaxPerPage = 100
)

// Page holds normalized pagination inputs from controllers.
type Page struct {
	Number  int
	PerPage int
}

// Normalize clamps the requested page number and size. fallbackSize comes
// from the config document's items_per_page setting.
func Normalize(number, perPage, fallbackSize int) Page {
	if number <= 0 {
		number = 1
	}
	if perPage <= 0 {
		perPage = fallbackSize
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Page{Number: number, PerPage: perPage}
}

// Bounds returns the half-open [start, end) slice bounds for a collection of
// the given length. A page past the end yields start == end == total.
func (p Page) Bounds(total int) (int, int) {
	start := (p.Number - 1) * p.PerPage
	if start > total {
		start = total
	}
	end := start + p.PerPage
	if end > total {
		end = total
	}
	return start, end
}

// Pages reports how many pages the collection spans.
func (p Page) Pages(total int) int {
	if total == 0 {
		return 0
	}
	return (total + p.PerPage - 1) / p.PerPage
}
