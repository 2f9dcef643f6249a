package communitysite

import (
	"strings"
	"testing"
)

func TestPostInputValidate(t *testing.T) {
	valid := postInput{
		Title:      "Eid Celebration",
		Content:    "Details about the celebration.",
		Status:     "published",
		CategoryID: 1,
	}
	if errs := valid.validate(); len(errs) != 0 {
		t.Fatalf("valid input produced errors: %v", errs)
	}

	in := postInput{Status: "published"}
	errs := in.validate()
	for _, field := range []string{"title", "content", "category_id"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("missing error for %s: %v", field, errs)
		}
	}

	in = valid
	in.Status = "archived"
	if _, ok := in.validate()["status"]; !ok {
		t.Error("archived must be rejected as a submitted status")
	}

	in = valid
	in.Excerpt = strings.Repeat("x", maxExcerptLen+1)
	if _, ok := in.validate()["excerpt"]; !ok {
		t.Error("overlong excerpt must be rejected")
	}

	in = valid
	in.Title = "   "
	if _, ok := in.validate()["title"]; !ok {
		t.Error("whitespace-only title must be rejected")
	}
}

func TestCategoryInputValidate(t *testing.T) {
	in := categoryInput{Name: "Events", SortOrder: -1}
	errs := in.validate()
	if _, ok := errs["sort_order"]; !ok {
		t.Errorf("negative sort_order must be rejected: %v", errs)
	}

	in = categoryInput{Name: "Events", Color: "#22c55e"}
	if errs := in.validate(); len(errs) != 0 {
		t.Errorf("valid category produced errors: %v", errs)
	}
}

func TestPageInputValidate(t *testing.T) {
	in := pageInput{Title: "About Us", Content: "Who we are.", Template: "default"}
	if errs := in.validate(); len(errs) != 0 {
		t.Fatalf("valid page produced errors: %v", errs)
	}

	in.Template = ""
	if _, ok := in.validate()["template"]; !ok {
		t.Error("empty template must be rejected")
	}
}

func TestGalleryInputValidate(t *testing.T) {
	in := galleryInput{Title: "Summer Picnic", EventDate: "2024-07-14"}
	if errs := in.validate(); len(errs) != 0 {
		t.Fatalf("valid gallery produced errors: %v", errs)
	}
	if d := in.eventDate(); d == nil || d.Format("2006-01-02") != "2024-07-14" {
		t.Errorf("eventDate = %v", d)
	}

	in.EventDate = "14/07/2024"
	if _, ok := in.validate()["event_date"]; !ok {
		t.Error("malformed event_date must be rejected")
	}

	in.EventDate = ""
	if errs := in.validate(); len(errs) != 0 {
		t.Errorf("empty event_date is optional: %v", errs)
	}
	if in.eventDate() != nil {
		t.Error("empty event_date should yield nil")
	}
}

func TestValidationErrorsError(t *testing.T) {
	errs := ValidationErrors{"title": "title is required", "content": "content is required"}
	msg := errs.Error()
	if msg != "validation failed: content, title" {
		t.Errorf("Error() = %q", msg)
	}
}
