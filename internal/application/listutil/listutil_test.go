package listutil

import (
	"net/url"
	"testing"
)

func TestParsePageParams(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantPage    int
		wantPerPage int
	}{
		{"defaults", "", 1, DefaultPerPage},
		{"explicit values", "page=3&per_page=50", 3, 50},
		{"zero page clamps to 1", "page=0", 1, DefaultPerPage},
		{"negative page clamps to 1", "page=-2", 1, DefaultPerPage},
		{"disallowed per_page falls back", "per_page=7", 1, DefaultPerPage},
		{"non-numeric values fall back", "page=abc&per_page=xyz", 1, DefaultPerPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			got := ParsePageParams(q)
			if got.Page != tt.wantPage || got.PerPage != tt.wantPerPage {
				t.Errorf("got %+v, want page=%d perPage=%d", got, tt.wantPage, tt.wantPerPage)
			}
		})
	}
}

func TestParseFilterParams(t *testing.T) {
	q, _ := url.ParseQuery("q=ahmad&unit=SMA&bogus=x")
	fp := ParseFilterParams(q, []string{"unit"})
	if fp.Search != "ahmad" {
		t.Errorf("got search %q", fp.Search)
	}
	if fp.Filters["unit"] != "SMA" {
		t.Errorf("got unit %q", fp.Filters["unit"])
	}
	if _, ok := fp.Filters["bogus"]; ok {
		t.Error("unrecognised keys must be dropped")
	}
}

func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		name           string
		page, perPage  int
		total          int
		wantPage       int
		wantTotalPages int
	}{
		{"exact pages", 1, 30, 60, 1, 2},
		{"partial last page", 1, 30, 61, 1, 3},
		{"page beyond range clamps", 9, 30, 31, 2, 2},
		{"empty set still has one page", 1, 30, 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pi := NewPageInfo(tt.page, tt.perPage, tt.total)
			if pi.Page != tt.wantPage || pi.TotalPages != tt.wantTotalPages {
				t.Errorf("got %+v, want page=%d totalPages=%d", pi, tt.wantPage, tt.wantTotalPages)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := PageParams{Page: 3, PerPage: 30}
	if got := p.Offset(); got != 60 {
		t.Errorf("got %d, want 60", got)
	}
}
