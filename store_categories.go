package communitysite

import "time"

func scanCategory(row rowScanner, withCount bool) (Category, error) {
	var c Category
	var isActive int
	var createdAt, updatedAt string
	dest := []any{&c.ID, &c.Name, &c.Slug, &c.Color, &isActive, &c.SortOrder, &createdAt, &updatedAt}
	if withCount {
		dest = append(dest, &c.PostCount)
	}
	if err := row.Scan(dest...); err != nil {
		return Category{}, err
	}
	c.IsActive = isActive == 1
	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)
	return c, nil
}

const categoryColumns = `c.id, c.name, c.slug, c.color, c.is_active, c.sort_order, c.created_at, c.updated_at`

// CreateCategory derives a unique slug from the name and inserts the category.
func (s *Store) CreateCategory(c *Category) error {
	slug, err := s.uniqueSlug("categories", Slugify(c.Name))
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Second)
	c.Slug = slug
	c.CreatedAt = now
	c.UpdatedAt = now
	res, err := s.db.Exec(`INSERT INTO categories (name, slug, color, is_active, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Slug, c.Color, boolToInt(c.IsActive), c.SortOrder, fmtTime(now), fmtTime(now))
	if err != nil {
		return err
	}
	c.ID, err = res.LastInsertId()
	return err
}

// UpdateCategory rewrites the editable fields; the slug follows the name
// unless the existing slug already derives from it.
func (s *Store) UpdateCategory(c *Category) error {
	existing, err := s.GetCategoryByID(c.ID)
	if err != nil {
		return err
	}
	base := Slugify(c.Name)
	if keepsSlug(existing.Slug, base) {
		c.Slug = existing.Slug
	} else {
		c.Slug, err = s.uniqueSlug("categories", base)
		if err != nil {
			return err
		}
	}
	now := time.Now().UTC().Truncate(time.Second)
	c.UpdatedAt = now
	_, err = s.db.Exec(`UPDATE categories SET name = ?, slug = ?, color = ?, is_active = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`,
		c.Name, c.Slug, c.Color, boolToInt(c.IsActive), c.SortOrder, fmtTime(now), c.ID)
	return err
}

// DeleteCategory removes a category. It is refused with ErrConflict while any
// post still references it; neither the category nor its posts change.
func (s *Store) DeleteCategory(id int64) error {
	n, err := s.CountPostsInCategory(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	_, err = s.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	return err
}

// CountPostsInCategory returns how many posts, of any status, reference the
// category.
func (s *Store) CountPostsInCategory(id int64) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE category_id = ?`, id).Scan(&n)
	return n, err
}

// GetCategoryBySlug returns a category by slug, with its published-post count.
func (s *Store) GetCategoryBySlug(slug string) (Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+`,
		(SELECT COUNT(*) FROM posts p WHERE p.category_id = c.id AND p.status = 'published')
		FROM categories c WHERE c.slug = ?`, slug)
	return scanCategory(row, true)
}

// GetCategoryByID returns a category by id.
func (s *Store) GetCategoryByID(id int64) (Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories c WHERE c.id = ?`, id)
	return scanCategory(row, false)
}

// ListActiveCategories returns active categories ordered by sort_order, each
// annotated with its count of published posts only.
func (s *Store) ListActiveCategories() ([]Category, error) {
	rows, err := s.db.Query(`SELECT ` + categoryColumns + `,
		(SELECT COUNT(*) FROM posts p WHERE p.category_id = c.id AND p.status = 'published')
		FROM categories c WHERE c.is_active = 1 ORDER BY c.sort_order, c.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []Category
	for rows.Next() {
		c, err := scanCategory(rows, true)
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// ListCategoriesByName returns active categories ordered by name, for the
// post form's category picker.
func (s *Store) ListCategoriesByName() ([]Category, error) {
	rows, err := s.db.Query(`SELECT ` + categoryColumns + ` FROM categories c WHERE c.is_active = 1 ORDER BY c.name, c.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []Category
	for rows.Next() {
		c, err := scanCategory(rows, false)
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// AdminListCategories returns every category ordered by sort_order, each
// annotated with its total post count, paginated.
func (s *Store) AdminListCategories(page int) ([]Category, Pagination, error) {
	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&total); err != nil {
		return nil, Pagination{}, err
	}
	pg := paginate(page, adminPageSize, total)
	rows, err := s.db.Query(`SELECT `+categoryColumns+`,
		(SELECT COUNT(*) FROM posts p WHERE p.category_id = c.id)
		FROM categories c ORDER BY c.sort_order, c.id LIMIT ? OFFSET ?`, pg.PerPage, pg.offset())
	if err != nil {
		return nil, Pagination{}, err
	}
	defer rows.Close()

	var cats []Category
	for rows.Next() {
		c, err := scanCategory(rows, true)
		if err != nil {
			return nil, Pagination{}, err
		}
		cats = append(cats, c)
	}
	return cats, pg, rows.Err()
}

// CountCategories returns total and active category counts.
func (s *Store) CountCategories() (total, active int, err error) {
	err = s.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(is_active), 0) FROM categories`).Scan(&total, &active)
	return total, active, err
}
