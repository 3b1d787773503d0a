package pagination

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	page := Normalize(0, 0, 0)
	if page.Number != 1 {
		t.Fatalf("expected page 1, got %d", page.Number)
	}
	if page.PerPage != DefaultPerPage {
		t.Fatalf("expected default per-page %d, got %d", DefaultPerPage, page.PerPage)
	}
}

func TestNormalizeUsesConfiguredFallback(t *testing.T) {
	page := Normalize(2, 0, 50)
	if page.PerPage != 50 {
		t.Fatalf("expected configured per-page 50, got %d", page.PerPage)
	}
}

func TestNormalizeCapsPerPage(t *testing.T) {
	page := Normalize(1, 10_000, 20)
	if page.PerPage != MaxPerPage {
		t.Fatalf("expected cap %d, got %d", MaxPerPage, page.PerPage)
	}
}

func TestBounds(t *testing.T) {
	page := Page{Number: 2, PerPage: 10}

	start, end := page.Bounds(25)
	if start != 10 || end != 20 {
		t.Fatalf("expected [10,20), got [%d,%d)", start, end)
	}

	start, end = page.Bounds(12)
	if start != 10 || end != 12 {
		t.Fatalf("expected [10,12), got [%d,%d)", start, end)
	}

	start, end = page.Bounds(5)
	if start != 5 || end != 5 {
		t.Fatalf("expected empty range past the end, got [%d,%d)", start, end)
	}
}

func TestPages(t *testing.T) {
	page := Page{Number: 1, PerPage: 10}
	if got := page.Pages(0); got != 0 {
		t.Fatalf("expected 0 pages, got %d", got)
	}
	if got := page.Pages(10); got != 1 {
		t.Fatalf("expected 1 page, got %d", got)
	}
	if got := page.Pages(11); got != 2 {
		t.Fatalf("expected 2 pages, got %d", got)
	}
}
