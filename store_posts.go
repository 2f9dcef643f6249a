package communitysite

import (
	"database/sql"
	"time"
)

const postColumns = `p.id, p.title, p.slug, p.excerpt, p.content, p.featured_image,
	p.status, p.is_featured, p.views, p.published_at, p.user_id, p.category_id,
	p.created_at, p.updated_at,
	u.name, u.avatar, u.role,
	c.name, c.slug, c.color, c.is_active, c.sort_order`

const postJoins = `FROM posts p
	JOIN users u ON u.id = p.user_id
	JOIN categories c ON c.id = p.category_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (Post, error) {
	var p Post
	var author User
	var category Category
	var isFeatured, catActive int
	var publishedAt sql.NullString
	var createdAt, updatedAt string
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.FeaturedImage,
		&p.Status, &isFeatured, &p.Views, &publishedAt, &p.UserID, &p.CategoryID,
		&createdAt, &updatedAt,
		&author.Name, &author.Avatar, &author.Role,
		&category.Name, &category.Slug, &category.Color, &catActive, &category.SortOrder,
	)
	if err != nil {
		return Post{}, err
	}
	p.IsFeatured = isFeatured == 1
	p.PublishedAt = scanNullTime(publishedAt)
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	author.ID = p.UserID
	category.ID = p.CategoryID
	category.IsActive = catActive == 1
	p.Author = &author
	p.Category = &category
	return p, nil
}

// CreatePost derives a unique slug from the title, applies the publication
// timestamp rule, and inserts the post. ID and timestamps are written back.
func (s *Store) CreatePost(p *Post) error {
	slug, err := s.uniqueSlug("posts", Slugify(p.Title))
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Second)
	p.Slug = slug
	p.PublishedAt = resolvePublishedAt(p.PublishedAt, p.Status, now)
	p.CreatedAt = now
	p.UpdatedAt = now
	res, err := s.db.Exec(`INSERT INTO posts
		(title, slug, excerpt, content, featured_image, status, is_featured, views, published_at, user_id, category_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?, ?, ?)`,
		p.Title, p.Slug, p.Excerpt, p.Content, p.FeaturedImage, string(p.Status),
		boolToInt(p.IsFeatured), fmtNullTime(p.PublishedAt), p.UserID, p.CategoryID,
		fmtTime(now), fmtTime(now))
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	return err
}

// UpdatePost rewrites the editable fields of the post identified by p.ID.
// The slug follows the title unless the existing slug already derives from
// it; a once-set publish timestamp is always preserved.
func (s *Store) UpdatePost(p *Post) error {
	existing, err := s.GetPostByID(p.ID)
	if err != nil {
		return err
	}
	base := Slugify(p.Title)
	if keepsSlug(existing.Slug, base) {
		p.Slug = existing.Slug
	} else {
		p.Slug, err = s.uniqueSlug("posts", base)
		if err != nil {
			return err
		}
	}
	now := time.Now().UTC().Truncate(time.Second)
	p.PublishedAt = resolvePublishedAt(existing.PublishedAt, p.Status, now)
	p.UpdatedAt = now
	_, err = s.db.Exec(`UPDATE posts SET
		title = ?, slug = ?, excerpt = ?, content = ?, featured_image = ?,
		status = ?, is_featured = ?, published_at = ?, category_id = ?, updated_at = ?
		WHERE id = ?`,
		p.Title, p.Slug, p.Excerpt, p.Content, p.FeaturedImage,
		string(p.Status), boolToInt(p.IsFeatured), fmtNullTime(p.PublishedAt),
		p.CategoryID, fmtTime(now), p.ID)
	return err
}

// GetPostBySlug returns a post in any status; visibility is the caller's
// policy check.
func (s *Store) GetPostBySlug(slug string) (Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` `+postJoins+` WHERE p.slug = ?`, slug)
	return scanPost(row)
}

// GetPostByID returns a post in any status by id.
func (s *Store) GetPostByID(id int64) (Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` `+postJoins+` WHERE p.id = ?`, id)
	return scanPost(row)
}

// ListPosts runs a listing spec and returns the matching posts with their
// author and category attached. Paginated specs also return page metadata.
func (s *Store) ListPosts(spec postSpec) ([]Post, Pagination, error) {
	where, args := spec.where()
	var pg Pagination
	if spec.paginated() {
		var total int
		if err := s.db.QueryRow(`SELECT COUNT(*) FROM posts p `+where, args...).Scan(&total); err != nil {
			return nil, Pagination{}, err
		}
		pg = paginate(spec.page, spec.perPage, total)
	}
	query := `SELECT ` + postColumns + ` ` + postJoins + ` ` + where + ` ` + spec.tail(pg)
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, Pagination{}, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, Pagination{}, err
		}
		posts = append(posts, p)
	}
	return posts, pg, rows.Err()
}

// IncrementViews bumps the view counter. Concurrent renders may race; the
// counter is approximate by contract.
func (s *Store) IncrementViews(id int64) error {
	_, err := s.db.Exec(`UPDATE posts SET views = views + 1 WHERE id = ?`, id)
	return err
}

// DeletePost removes a post by id.
func (s *Store) DeletePost(id int64) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	return err
}

// CountPosts returns the number of posts in the given status, or all posts
// when status is empty.
func (s *Store) CountPosts(status Status) (int, error) {
	var n int
	var err error
	if status == "" {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&n)
	} else {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE status = ?`, string(status)).Scan(&n)
	}
	return n, err
}
