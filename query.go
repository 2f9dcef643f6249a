package communitysite

import (
	"fmt"
	"strings"
)

// Listing specifications. Each public or admin listing surface is a named
// constructor over a small spec struct that compiles to WHERE/ORDER/LIMIT
// fragments, replacing the scattered per-handler query building the site
// started with. Every ordering carries the row id as a stable tie-break.

// Page sizes and limits per listing surface.
const (
	homeFeaturedLimit    = 3
	homeRecentLimit      = 6
	homeGalleriesLimit   = 3
	relatedPostsLimit    = 3
	publicPageSize       = 12
	adminPageSize        = 15
	galleryPreviewImages = 4
)

// Pagination describes one page of a listing. An out-of-range page is a
// valid, empty page — never an error.
type Pagination struct {
	Page     int `json:"current_page"`
	PerPage  int `json:"per_page"`
	Total    int `json:"total"`
	LastPage int `json:"last_page"`
}

func paginate(page, perPage, total int) Pagination {
	if page < 1 {
		page = 1
	}
	last := (total + perPage - 1) / perPage
	if last < 1 {
		last = 1
	}
	return Pagination{Page: page, PerPage: perPage, Total: total, LastPage: last}
}

func (p Pagination) offset() int {
	return (p.Page - 1) * p.PerPage
}

// postSpec filters, orders and sizes a post listing.
type postSpec struct {
	status       Status // "" matches every status (admin listings)
	categoryID   int64
	featuredOnly bool
	excludeID    int64

	orderBy string
	limit   int // 0 = unlimited
	page    int // 0 = no pagination
	perPage int
}

const (
	orderByPublished = "p.published_at DESC, p.id DESC"
	orderByRecency   = "p.created_at DESC, p.id DESC"
)

func featuredPostsSpec() postSpec {
	return postSpec{status: StatusPublished, featuredOnly: true, orderBy: orderByPublished, limit: homeFeaturedLimit}
}

func recentPostsSpec() postSpec {
	return postSpec{status: StatusPublished, orderBy: orderByPublished, limit: homeRecentLimit}
}

func categoryPostsSpec(categoryID int64, page int) postSpec {
	return postSpec{status: StatusPublished, categoryID: categoryID, orderBy: orderByPublished, page: page, perPage: publicPageSize}
}

func relatedPostsSpec(p Post) postSpec {
	return postSpec{status: StatusPublished, categoryID: p.CategoryID, excludeID: p.ID, orderBy: orderByPublished, limit: relatedPostsLimit}
}

func adminPostsSpec(page int) postSpec {
	return postSpec{orderBy: orderByRecency, page: page, perPage: adminPageSize}
}

func recentAdminPostsSpec(limit int) postSpec {
	return postSpec{orderBy: orderByRecency, limit: limit}
}

// where returns the WHERE clause (including the keyword, or an empty string)
// and its arguments.
func (s postSpec) where() (string, []any) {
	var conds []string
	var args []any
	if s.status != "" {
		conds = append(conds, "p.status = ?")
		args = append(args, string(s.status))
	}
	if s.categoryID != 0 {
		conds = append(conds, "p.category_id = ?")
		args = append(args, s.categoryID)
	}
	if s.featuredOnly {
		conds = append(conds, "p.is_featured = 1")
	}
	if s.excludeID != 0 {
		conds = append(conds, "p.id != ?")
		args = append(args, s.excludeID)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// tail returns the ORDER BY / LIMIT / OFFSET clause for the given page of
// results (pg is ignored unless the spec paginates).
func (s postSpec) tail(pg Pagination) string {
	clause := "ORDER BY " + s.orderBy
	switch {
	case s.page > 0:
		clause += fmt.Sprintf(" LIMIT %d OFFSET %d", pg.PerPage, pg.offset())
	case s.limit > 0:
		clause += fmt.Sprintf(" LIMIT %d", s.limit)
	}
	return clause
}

func (s postSpec) paginated() bool { return s.page > 0 }

// gallerySpec filters, orders and sizes a gallery listing.
type gallerySpec struct {
	activeOnly   bool
	featuredOnly bool

	orderBy string
	limit   int
	page    int
	perPage int

	// imagesPerGallery truncates each gallery's images (by sort_order) on
	// listing surfaces; 0 attaches none.
	imagesPerGallery int
}

func publicGalleriesSpec(page int) gallerySpec {
	return gallerySpec{
		activeOnly:       true,
		orderBy:          "g.event_date DESC, g.id DESC",
		page:             page,
		perPage:          publicPageSize,
		imagesPerGallery: galleryPreviewImages,
	}
}

func featuredGalleriesSpec() gallerySpec {
	return gallerySpec{
		activeOnly:       true,
		featuredOnly:     true,
		orderBy:          "g.created_at DESC, g.id DESC",
		limit:            homeGalleriesLimit,
		imagesPerGallery: galleryPreviewImages,
	}
}

func adminGalleriesSpec(page int) gallerySpec {
	return gallerySpec{orderBy: "g.created_at DESC, g.id DESC", page: page, perPage: adminPageSize}
}

func recentAdminGalleriesSpec(limit int) gallerySpec {
	return gallerySpec{orderBy: "g.created_at DESC, g.id DESC", limit: limit}
}

func (s gallerySpec) where() (string, []any) {
	var conds []string
	if s.activeOnly {
		conds = append(conds, "g.is_active = 1")
	}
	if s.featuredOnly {
		conds = append(conds, "g.is_featured = 1")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), nil
}

func (s gallerySpec) tail(pg Pagination) string {
	clause := "ORDER BY " + s.orderBy
	switch {
	case s.page > 0:
		clause += fmt.Sprintf(" LIMIT %d OFFSET %d", pg.PerPage, pg.offset())
	case s.limit > 0:
		clause += fmt.Sprintf(" LIMIT %d", s.limit)
	}
	return clause
}

func (s gallerySpec) paginated() bool { return s.page > 0 }
