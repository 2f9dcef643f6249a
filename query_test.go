package communitysite

import (
	"strings"
	"testing"
)

func TestPaginate(t *testing.T) {
	cases := []struct {
		name          string
		page, perPage int
		total         int
		wantPage      int
		wantLast      int
	}{
		{"first page", 1, 12, 30, 1, 3},
		{"middle page", 2, 12, 30, 2, 3},
		{"exact multiple", 2, 12, 24, 2, 2},
		{"out of range stays valid", 9, 12, 30, 9, 3},
		{"empty listing", 1, 12, 0, 1, 1},
		{"zero page clamps to one", 0, 12, 30, 1, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pg := paginate(tc.page, tc.perPage, tc.total)
			if pg.Page != tc.wantPage {
				t.Errorf("Page = %d, want %d", pg.Page, tc.wantPage)
			}
			if pg.LastPage != tc.wantLast {
				t.Errorf("LastPage = %d, want %d", pg.LastPage, tc.wantLast)
			}
			if pg.Total != tc.total {
				t.Errorf("Total = %d, want %d", pg.Total, tc.total)
			}
		})
	}
}

func TestPaginationOffset(t *testing.T) {
	pg := paginate(3, 15, 100)
	if got := pg.offset(); got != 30 {
		t.Errorf("offset = %d, want 30", got)
	}
}

func TestPostSpecWhere(t *testing.T) {
	where, args := featuredPostsSpec().where()
	if !strings.Contains(where, "p.status = ?") || !strings.Contains(where, "p.is_featured = 1") {
		t.Errorf("featured spec where = %q", where)
	}
	if len(args) != 1 || args[0] != "published" {
		t.Errorf("featured spec args = %v", args)
	}

	where, args = adminPostsSpec(1).where()
	if where != "" || args != nil {
		t.Errorf("admin spec should match every status, got %q %v", where, args)
	}

	p := Post{ID: 7, CategoryID: 3}
	where, args = relatedPostsSpec(p).where()
	if !strings.Contains(where, "p.category_id = ?") || !strings.Contains(where, "p.id != ?") {
		t.Errorf("related spec where = %q", where)
	}
	if len(args) != 3 {
		t.Errorf("related spec args = %v", args)
	}
}

func TestPostSpecTail(t *testing.T) {
	spec := recentPostsSpec()
	tail := spec.tail(Pagination{})
	if !strings.Contains(tail, orderByPublished) {
		t.Errorf("tail missing ordering: %q", tail)
	}
	if !strings.Contains(tail, "LIMIT 6") {
		t.Errorf("tail missing limit: %q", tail)
	}

	spec = categoryPostsSpec(1, 2)
	pg := paginate(spec.page, spec.perPage, 30)
	tail = spec.tail(pg)
	if !strings.Contains(tail, "LIMIT 12 OFFSET 12") {
		t.Errorf("paginated tail = %q", tail)
	}
}

func TestOrderingCarriesIDTieBreak(t *testing.T) {
	specs := map[string]string{
		"published": orderByPublished,
		"recency":   orderByRecency,
		"galleries": publicGalleriesSpec(1).orderBy,
	}
	for name, order := range specs {
		if !strings.Contains(order, "id DESC") {
			t.Errorf("%s ordering %q lacks id tie-break", name, order)
		}
	}
}

func TestGallerySpecs(t *testing.T) {
	spec := publicGalleriesSpec(1)
	where, _ := spec.where()
	if !strings.Contains(where, "g.is_active = 1") {
		t.Errorf("public galleries where = %q", where)
	}
	if spec.imagesPerGallery != galleryPreviewImages {
		t.Errorf("imagesPerGallery = %d, want %d", spec.imagesPerGallery, galleryPreviewImages)
	}

	spec = featuredGalleriesSpec()
	where, _ = spec.where()
	if !strings.Contains(where, "g.is_featured = 1") {
		t.Errorf("featured galleries where = %q", where)
	}
	if spec.limit != homeGalleriesLimit {
		t.Errorf("featured galleries limit = %d, want %d", spec.limit, homeGalleriesLimit)
	}

	spec = adminGalleriesSpec(1)
	if where, _ := spec.where(); where != "" {
		t.Errorf("admin galleries should list inactive too, got %q", where)
	}
}
