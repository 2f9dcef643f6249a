package communitysite

import (
	"encoding/json"
	"time"
)

const pageColumns = `pg.id, pg.title, pg.slug, pg.content, pg.excerpt, pg.template,
	pg.is_active, pg.show_in_menu, pg.menu_order, pg.meta_data, pg.user_id,
	pg.created_at, pg.updated_at`

func scanPage(row rowScanner) (Page, error) {
	var p Page
	var isActive, showInMenu int
	var meta, createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.Template,
		&isActive, &showInMenu, &p.MenuOrder, &meta, &p.UserID, &createdAt, &updatedAt)
	if err != nil {
		return Page{}, err
	}
	p.IsActive = isActive == 1
	p.ShowInMenu = showInMenu == 1
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	if meta != "" && meta != "{}" {
		_ = json.Unmarshal([]byte(meta), &p.Meta)
	}
	return p, nil
}

func marshalMeta(meta map[string]string) string {
	if len(meta) == 0 {
		return "{}"
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// CreatePage derives a unique slug from the title and inserts the page.
func (s *Store) CreatePage(p *Page) error {
	slug, err := s.uniqueSlug("pages", Slugify(p.Title))
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Second)
	p.Slug = slug
	p.CreatedAt = now
	p.UpdatedAt = now
	res, err := s.db.Exec(`INSERT INTO pages
		(title, slug, content, excerpt, template, is_active, show_in_menu, menu_order, meta_data, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Slug, p.Content, p.Excerpt, p.Template,
		boolToInt(p.IsActive), boolToInt(p.ShowInMenu), p.MenuOrder,
		marshalMeta(p.Meta), p.UserID, fmtTime(now), fmtTime(now))
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	return err
}

// UpdatePage rewrites the editable fields; the slug follows the title unless
// the existing slug already derives from it.
func (s *Store) UpdatePage(p *Page) error {
	existing, err := s.GetPageByID(p.ID)
	if err != nil {
		return err
	}
	base := Slugify(p.Title)
	if keepsSlug(existing.Slug, base) {
		p.Slug = existing.Slug
	} else {
		p.Slug, err = s.uniqueSlug("pages", base)
		if err != nil {
			return err
		}
	}
	now := time.Now().UTC().Truncate(time.Second)
	p.UpdatedAt = now
	_, err = s.db.Exec(`UPDATE pages SET
		title = ?, slug = ?, content = ?, excerpt = ?, template = ?,
		is_active = ?, show_in_menu = ?, menu_order = ?, meta_data = ?, updated_at = ?
		WHERE id = ?`,
		p.Title, p.Slug, p.Content, p.Excerpt, p.Template,
		boolToInt(p.IsActive), boolToInt(p.ShowInMenu), p.MenuOrder,
		marshalMeta(p.Meta), fmtTime(now), p.ID)
	return err
}

// GetPageBySlug returns a page in any state; visibility is the caller's
// policy check.
func (s *Store) GetPageBySlug(slug string) (Page, error) {
	row := s.db.QueryRow(`SELECT `+pageColumns+` FROM pages pg WHERE pg.slug = ?`, slug)
	return scanPage(row)
}

// GetPageByID returns a page by id.
func (s *Store) GetPageByID(id int64) (Page, error) {
	row := s.db.QueryRow(`SELECT `+pageColumns+` FROM pages pg WHERE pg.id = ?`, id)
	return scanPage(row)
}

// MenuPages returns active pages flagged for the menu, ordered by menu_order.
func (s *Store) MenuPages() ([]Page, error) {
	rows, err := s.db.Query(`SELECT ` + pageColumns + ` FROM pages pg
		WHERE pg.is_active = 1 AND pg.show_in_menu = 1 ORDER BY pg.menu_order, pg.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// AdminListPages returns every page ordered by recency, paginated.
func (s *Store) AdminListPages(page int) ([]Page, Pagination, error) {
	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM pages`).Scan(&total); err != nil {
		return nil, Pagination{}, err
	}
	pg := paginate(page, adminPageSize, total)
	rows, err := s.db.Query(`SELECT `+pageColumns+` FROM pages pg
		ORDER BY pg.created_at DESC, pg.id DESC LIMIT ? OFFSET ?`, pg.PerPage, pg.offset())
	if err != nil {
		return nil, Pagination{}, err
	}
	defer rows.Close()

	var pages []Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, Pagination{}, err
		}
		pages = append(pages, p)
	}
	return pages, pg, rows.Err()
}

// DeletePage removes a page by id.
func (s *Store) DeletePage(id int64) error {
	_, err := s.db.Exec(`DELETE FROM pages WHERE id = ?`, id)
	return err
}

// CountPages returns total and active page counts.
func (s *Store) CountPages() (total, active int, err error) {
	err = s.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(is_active), 0) FROM pages`).Scan(&total, &active)
	return total, active, err
}
