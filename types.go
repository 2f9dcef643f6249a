package communitysite

import "time"

// Status is the publication state of a Post.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Role is the authorization level of a User.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is a site account. Content rows reference users but survive them.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Bio       string    `json:"bio,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	passwordHash string
}

// Viewer is the actor evaluating a request. The zero value is an anonymous
// visitor. Handlers load it once per request and pass it explicitly into
// policy checks — there is no ambient current-user lookup.
type Viewer struct {
	ID   int64
	Name string
	Role Role
}

// IsAdmin reports whether the viewer holds the admin role.
func (v Viewer) IsAdmin() bool { return v.ID != 0 && v.Role == RoleAdmin }

// IsAnonymous reports whether no authenticated user backs this viewer.
func (v Viewer) IsAnonymous() bool { return v.ID == 0 }

// Post is a blog entry. PublishedAt records the first time the post entered
// the published state and is never cleared afterwards.
type Post struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt,omitempty"`
	Content       string     `json:"content"`
	FeaturedImage string     `json:"featured_image,omitempty"`
	Status        Status     `json:"status"`
	IsFeatured    bool       `json:"is_featured"`
	Views         int64      `json:"views"`
	PublishedAt   *time.Time `json:"published_at"`
	UserID        int64      `json:"user_id"`
	CategoryID    int64      `json:"category_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Author   *User     `json:"user,omitempty"`
	Category *Category `json:"category,omitempty"`
}

// Category groups posts. Deleting a category is refused while posts reference it.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Color     string    `json:"color"`
	IsActive  bool      `json:"is_active"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// PostCount is filled by listing queries. Public listings count published
	// posts only; admin listings count every post.
	PostCount int `json:"posts_count"`
}

// Page is a static page, optionally shown in the site menu.
type Page struct {
	ID         int64             `json:"id"`
	Title      string            `json:"title"`
	Slug       string            `json:"slug"`
	Content    string            `json:"content"`
	Excerpt    string            `json:"excerpt,omitempty"`
	Template   string            `json:"template"`
	IsActive   bool              `json:"is_active"`
	ShowInMenu bool              `json:"show_in_menu"`
	MenuOrder  int               `json:"menu_order"`
	Meta       map[string]string `json:"meta_data,omitempty"`
	UserID     int64             `json:"user_id"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`

	Author *User `json:"user,omitempty"`
}

// Gallery is an ordered photo collection owned by a user.
type Gallery struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	CoverImage  string     `json:"cover_image,omitempty"`
	IsActive    bool       `json:"is_active"`
	IsFeatured  bool       `json:"is_featured"`
	SortOrder   int        `json:"sort_order"`
	EventDate   *time.Time `json:"event_date"`
	UserID      int64      `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Author *User `json:"user,omitempty"`
	// Images holds all images on detail pages and the first few (by
	// sort_order) on listing pages.
	Images     []GalleryImage `json:"images,omitempty"`
	ImageCount int            `json:"images_count"`
}

// ImageMeta records technical properties of an uploaded image.
type ImageMeta struct {
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Size   int64  `json:"size,omitempty"`
	Format string `json:"format,omitempty"`
}

// GalleryImage belongs to exactly one gallery and is cascade-deleted with it.
type GalleryImage struct {
	ID         int64     `json:"id"`
	GalleryID  int64     `json:"gallery_id"`
	ImagePath  string    `json:"image_path"`
	AltText    string    `json:"alt_text,omitempty"`
	Caption    string    `json:"caption,omitempty"`
	SortOrder  int       `json:"sort_order"`
	IsFeatured bool      `json:"is_featured"`
	Meta       ImageMeta `json:"metadata"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
