package http

import (
	"net/http/httptest"
	"testing"
)

func TestParsePageQuery(t *testing.T) {
	cases := []struct {
		url    string
		page   int
		limit  int
		offset int
	}{
		{"/api/admin/schools", 1, defaultPageLimit, 0},
		{"/api/admin/schools?page=3&limit=25", 3, 25, 50},
		{"/api/admin/schools?page=0&limit=-5", 1, defaultPageLimit, 0},
		{"/api/admin/schools?page=2&limit=9999", 2, maxPageLimit, maxPageLimit},
	}

	for _, tc := range cases {
		q := parsePageQuery(httptest.NewRequest("GET", tc.url, nil))
		if q.page != tc.page || q.limit != tc.limit || q.offset != tc.offset {
			t.Errorf("parsePageQuery(%q) = %+v, want page=%d limit=%d offset=%d",
				tc.url, q, tc.page, tc.limit, tc.offset)
		}
	}
}

func TestPaginate(t *testing.T) {
	p := paginate(pageQuery{page: 2, limit: 10, offset: 10}, 35)
	if p.TotalPages != 4 {
		t.Fatalf("TotalPages = %d, want 4", p.TotalPages)
	}
	if p.TotalRecords != 35 || p.RecordsPerPage != 10 || p.CurrentPage != 2 {
		t.Fatalf("pagination = %+v", p)
	}
	if !p.HasNextPage || !p.HasPreviousPage {
		t.Fatalf("pagination = %+v, want both neighbors", p)
	}

	first := paginate(pageQuery{page: 1, limit: 10}, 5)
	if first.TotalPages != 1 || first.HasNextPage || first.HasPreviousPage {
		t.Fatalf("pagination = %+v", first)
	}

	empty := paginate(pageQuery{page: 1, limit: 10}, 0)
	if empty.TotalPages != 0 || empty.HasNextPage {
		t.Fatalf("pagination = %+v", empty)
	}
}
