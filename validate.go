package communitysite

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ValidationErrors maps field names to human-readable messages. A request
// that fails validation is not applied.
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// Field length limits, matching the storage layer's column contracts.
const (
	maxTitleLen       = 255
	maxNameLen        = 255
	maxExcerptLen     = 500
	maxDescriptionLen = 1000
	maxImagePathLen   = 255
	maxTemplateLen    = 50
	maxColorLen       = 20
	maxCaptionLen     = 255
)

// postInput carries the writable post fields from a create/update request.
type postInput struct {
	Title         string `json:"title" form:"title"`
	Excerpt       string `json:"excerpt" form:"excerpt"`
	Content       string `json:"content" form:"content"`
	FeaturedImage string `json:"featured_image" form:"featured_image"`
	Status        string `json:"status" form:"status"`
	IsFeatured    bool   `json:"is_featured" form:"is_featured"`
	CategoryID    int64  `json:"category_id" form:"category_id"`
}

func (in postInput) validate() ValidationErrors {
	errs := ValidationErrors{}
	requireString(errs, "title", in.Title, maxTitleLen)
	requireString(errs, "content", in.Content, 0)
	limitString(errs, "excerpt", in.Excerpt, maxExcerptLen)
	limitString(errs, "featured_image", in.FeaturedImage, maxImagePathLen)
	// Archived is part of the status domain but no write path produces it.
	if in.Status != string(StatusDraft) && in.Status != string(StatusPublished) {
		errs["status"] = "status must be draft or published"
	}
	if in.CategoryID <= 0 {
		errs["category_id"] = "category is required"
	}
	return errs
}

// categoryInput carries the writable category fields.
type categoryInput struct {
	Name      string `json:"name" form:"name"`
	Color     string `json:"color" form:"color"`
	IsActive  *bool  `json:"is_active" form:"is_active"`
	SortOrder int    `json:"sort_order" form:"sort_order"`
}

func (in categoryInput) validate() ValidationErrors {
	errs := ValidationErrors{}
	requireString(errs, "name", in.Name, maxNameLen)
	limitString(errs, "color", in.Color, maxColorLen)
	if in.SortOrder < 0 {
		errs["sort_order"] = "sort_order must not be negative"
	}
	return errs
}

// pageInput carries the writable page fields.
type pageInput struct {
	Title      string            `json:"title" form:"title"`
	Content    string            `json:"content" form:"content"`
	Excerpt    string            `json:"excerpt" form:"excerpt"`
	Template   string            `json:"template" form:"template"`
	IsActive   *bool             `json:"is_active" form:"is_active"`
	ShowInMenu bool              `json:"show_in_menu" form:"show_in_menu"`
	MenuOrder  int               `json:"menu_order" form:"menu_order"`
	Meta       map[string]string `json:"meta_data" form:"-"`
}

func (in pageInput) validate() ValidationErrors {
	errs := ValidationErrors{}
	requireString(errs, "title", in.Title, maxTitleLen)
	requireString(errs, "content", in.Content, 0)
	limitString(errs, "excerpt", in.Excerpt, maxExcerptLen)
	requireString(errs, "template", in.Template, maxTemplateLen)
	if in.MenuOrder < 0 {
		errs["menu_order"] = "menu_order must not be negative"
	}
	return errs
}

// galleryInput carries the writable gallery fields. EventDate uses the
// YYYY-MM-DD form the admin UI submits.
type galleryInput struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	CoverImage  string `json:"cover_image" form:"cover_image"`
	IsActive    *bool  `json:"is_active" form:"is_active"`
	IsFeatured  bool   `json:"is_featured" form:"is_featured"`
	SortOrder   int    `json:"sort_order" form:"sort_order"`
	EventDate   string `json:"event_date" form:"event_date"`
}

func (in galleryInput) validate() ValidationErrors {
	errs := ValidationErrors{}
	requireString(errs, "title", in.Title, maxTitleLen)
	limitString(errs, "description", in.Description, maxDescriptionLen)
	limitString(errs, "cover_image", in.CoverImage, maxImagePathLen)
	if in.SortOrder < 0 {
		errs["sort_order"] = "sort_order must not be negative"
	}
	if in.EventDate != "" {
		if _, err := time.Parse("2006-01-02", in.EventDate); err != nil {
			errs["event_date"] = "event_date must be a valid date (YYYY-MM-DD)"
		}
	}
	return errs
}

func (in galleryInput) eventDate() *time.Time {
	if in.EventDate == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", in.EventDate)
	if err != nil {
		return nil
	}
	return &t
}

// loginInput carries admin login credentials.
type loginInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func requireString(errs ValidationErrors, field, value string, maxLen int) {
	if strings.TrimSpace(value) == "" {
		errs[field] = field + " is required"
		return
	}
	limitString(errs, field, value, maxLen)
}

func limitString(errs ValidationErrors, field, value string, maxLen int) {
	if maxLen > 0 && len(value) > maxLen {
		errs[field] = fmt.Sprintf("%s must not exceed %d characters", field, maxLen)
	}
}
