package communitysite

import (
	"database/sql"
	"encoding/json"
	"time"
)

const galleryColumns = `g.id, g.title, g.slug, g.description, g.cover_image,
	g.is_active, g.is_featured, g.sort_order, g.event_date, g.user_id,
	g.created_at, g.updated_at,
	u.name, u.avatar,
	(SELECT COUNT(*) FROM gallery_images gi WHERE gi.gallery_id = g.id)`

const galleryJoins = `FROM galleries g JOIN users u ON u.id = g.user_id`

func scanGallery(row rowScanner) (Gallery, error) {
	var g Gallery
	var author User
	var isActive, isFeatured int
	var eventDate sql.NullString
	var createdAt, updatedAt string
	err := row.Scan(&g.ID, &g.Title, &g.Slug, &g.Description, &g.CoverImage,
		&isActive, &isFeatured, &g.SortOrder, &eventDate, &g.UserID,
		&createdAt, &updatedAt,
		&author.Name, &author.Avatar, &g.ImageCount)
	if err != nil {
		return Gallery{}, err
	}
	g.IsActive = isActive == 1
	g.IsFeatured = isFeatured == 1
	g.EventDate = scanNullTime(eventDate)
	g.CreatedAt = parseTime(createdAt)
	g.UpdatedAt = parseTime(updatedAt)
	author.ID = g.UserID
	g.Author = &author
	return g, nil
}

func scanGalleryImage(row rowScanner) (GalleryImage, error) {
	var img GalleryImage
	var isFeatured int
	var meta, createdAt, updatedAt string
	err := row.Scan(&img.ID, &img.GalleryID, &img.ImagePath, &img.AltText, &img.Caption,
		&img.SortOrder, &isFeatured, &meta, &createdAt, &updatedAt)
	if err != nil {
		return GalleryImage{}, err
	}
	img.IsFeatured = isFeatured == 1
	img.CreatedAt = parseTime(createdAt)
	img.UpdatedAt = parseTime(updatedAt)
	if meta != "" && meta != "{}" {
		_ = json.Unmarshal([]byte(meta), &img.Meta)
	}
	return img, nil
}

const galleryImageColumns = `gi.id, gi.gallery_id, gi.image_path, gi.alt_text, gi.caption,
	gi.sort_order, gi.is_featured, gi.metadata, gi.created_at, gi.updated_at`

// CreateGallery derives a unique slug from the title and inserts the gallery.
func (s *Store) CreateGallery(g *Gallery) error {
	slug, err := s.uniqueSlug("galleries", Slugify(g.Title))
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Second)
	g.Slug = slug
	g.CreatedAt = now
	g.UpdatedAt = now
	res, err := s.db.Exec(`INSERT INTO galleries
		(title, slug, description, cover_image, is_active, is_featured, sort_order, event_date, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.Title, g.Slug, g.Description, g.CoverImage,
		boolToInt(g.IsActive), boolToInt(g.IsFeatured), g.SortOrder,
		fmtNullTime(g.EventDate), g.UserID, fmtTime(now), fmtTime(now))
	if err != nil {
		return err
	}
	g.ID, err = res.LastInsertId()
	return err
}

// UpdateGallery rewrites the editable fields; the slug follows the title
// unless the existing slug already derives from it.
func (s *Store) UpdateGallery(g *Gallery) error {
	existing, err := s.GetGalleryByID(g.ID)
	if err != nil {
		return err
	}
	base := Slugify(g.Title)
	if keepsSlug(existing.Slug, base) {
		g.Slug = existing.Slug
	} else {
		g.Slug, err = s.uniqueSlug("galleries", base)
		if err != nil {
			return err
		}
	}
	now := time.Now().UTC().Truncate(time.Second)
	g.UpdatedAt = now
	_, err = s.db.Exec(`UPDATE galleries SET
		title = ?, slug = ?, description = ?, cover_image = ?,
		is_active = ?, is_featured = ?, sort_order = ?, event_date = ?, updated_at = ?
		WHERE id = ?`,
		g.Title, g.Slug, g.Description, g.CoverImage,
		boolToInt(g.IsActive), boolToInt(g.IsFeatured), g.SortOrder,
		fmtNullTime(g.EventDate), fmtTime(now), g.ID)
	return err
}

// DeleteGallery removes a gallery; its images go with it via the foreign-key
// cascade.
func (s *Store) DeleteGallery(id int64) error {
	_, err := s.db.Exec(`DELETE FROM galleries WHERE id = ?`, id)
	return err
}

// GetGalleryBySlug returns a gallery with all of its images in sort order.
func (s *Store) GetGalleryBySlug(slug string) (Gallery, error) {
	row := s.db.QueryRow(`SELECT `+galleryColumns+` `+galleryJoins+` WHERE g.slug = ?`, slug)
	g, err := scanGallery(row)
	if err != nil {
		return Gallery{}, err
	}
	g.Images, err = s.galleryImages(g.ID, 0)
	return g, err
}

// GetGalleryByID returns a gallery without its images.
func (s *Store) GetGalleryByID(id int64) (Gallery, error) {
	row := s.db.QueryRow(`SELECT `+galleryColumns+` `+galleryJoins+` WHERE g.id = ?`, id)
	return scanGallery(row)
}

// ListGalleries runs a listing spec. When the spec carries a per-gallery
// image budget, each returned gallery holds only its first images by
// sort_order.
func (s *Store) ListGalleries(spec gallerySpec) ([]Gallery, Pagination, error) {
	where, args := spec.where()
	var pg Pagination
	if spec.paginated() {
		var total int
		if err := s.db.QueryRow(`SELECT COUNT(*) FROM galleries g `+where, args...).Scan(&total); err != nil {
			return nil, Pagination{}, err
		}
		pg = paginate(spec.page, spec.perPage, total)
	}
	query := `SELECT ` + galleryColumns + ` ` + galleryJoins + ` ` + where + ` ` + spec.tail(pg)
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, Pagination{}, err
	}
	defer rows.Close()

	var galleries []Gallery
	for rows.Next() {
		g, err := scanGallery(rows)
		if err != nil {
			return nil, Pagination{}, err
		}
		galleries = append(galleries, g)
	}
	if err := rows.Err(); err != nil {
		return nil, Pagination{}, err
	}
	if spec.imagesPerGallery > 0 {
		for i := range galleries {
			galleries[i].Images, err = s.galleryImages(galleries[i].ID, spec.imagesPerGallery)
			if err != nil {
				return nil, Pagination{}, err
			}
		}
	}
	return galleries, pg, nil
}

// galleryImages returns a gallery's images ordered by sort_order, truncated
// to limit when limit > 0.
func (s *Store) galleryImages(galleryID int64, limit int) ([]GalleryImage, error) {
	query := `SELECT ` + galleryImageColumns + ` FROM gallery_images gi
		WHERE gi.gallery_id = ? ORDER BY gi.sort_order, gi.id`
	args := []any{galleryID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []GalleryImage
	for rows.Next() {
		img, err := scanGalleryImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// AddGalleryImage appends an image to a gallery. A zero SortOrder places it
// after the gallery's current last image.
func (s *Store) AddGalleryImage(img *GalleryImage) error {
	if img.SortOrder == 0 {
		if err := s.db.QueryRow(`SELECT COALESCE(MAX(sort_order), 0) + 1 FROM gallery_images WHERE gallery_id = ?`,
			img.GalleryID).Scan(&img.SortOrder); err != nil {
			return err
		}
	}
	meta, err := json.Marshal(img.Meta)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Second)
	img.CreatedAt = now
	img.UpdatedAt = now
	res, err := s.db.Exec(`INSERT INTO gallery_images
		(gallery_id, image_path, alt_text, caption, sort_order, is_featured, metadata, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		img.GalleryID, img.ImagePath, img.AltText, img.Caption,
		img.SortOrder, boolToInt(img.IsFeatured), string(meta), fmtTime(now), fmtTime(now))
	if err != nil {
		return err
	}
	img.ID, err = res.LastInsertId()
	return err
}

// GetGalleryImage returns a single image by id.
func (s *Store) GetGalleryImage(id int64) (GalleryImage, error) {
	row := s.db.QueryRow(`SELECT `+galleryImageColumns+` FROM gallery_images gi WHERE gi.id = ?`, id)
	return scanGalleryImage(row)
}

// DeleteGalleryImage removes a single image row.
func (s *Store) DeleteGalleryImage(id int64) error {
	_, err := s.db.Exec(`DELETE FROM gallery_images WHERE id = ?`, id)
	return err
}

// CountGalleries returns total and active gallery counts.
func (s *Store) CountGalleries() (total, active int, err error) {
	err = s.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(is_active), 0) FROM galleries`).Scan(&total, &active)
	return total, active, err
}
