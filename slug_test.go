package communitysite

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Eid Celebration 2024", "eid-celebration-2024"},
		{"Hello, World!", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Multiple---Separators___here", "multiple-separators-here"},
		{"UPPER case", "upper-case"},
		{"café crème", "caf-cr-me"},
		{"2024", "2024"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	first := Slugify("Community Iftar Night")
	for i := 0; i < 5; i++ {
		if got := Slugify("Community Iftar Night"); got != first {
			t.Fatalf("Slugify not deterministic: %q vs %q", got, first)
		}
	}
}

func TestKeepsSlug(t *testing.T) {
	cases := []struct {
		existing string
		base     string
		want     bool
	}{
		{"eid-celebration", "eid-celebration", true},
		{"eid-celebration-2", "eid-celebration", true},
		{"eid-celebration-13", "eid-celebration", true},
		{"eid-celebration-999", "eid-celebration", true},
		// Collision handling never generates -1 or four-digit suffixes; a
		// trailing year belongs to the title and must not pin the slug.
		{"eid-celebration-1", "eid-celebration", false},
		{"eid-celebration-2024", "eid-celebration", false},
		{"eid-celebration", "ramadan-schedule", false},
		{"eid-celebration-extra", "eid-celebration", false},
		{"eid-celebration-2a", "eid-celebration", false},
		{"eid-celebration-", "eid-celebration", false},
	}
	for _, tc := range cases {
		if got := keepsSlug(tc.existing, tc.base); got != tc.want {
			t.Errorf("keepsSlug(%q, %q) = %v, want %v", tc.existing, tc.base, got, tc.want)
		}
	}
}
