package communitysite

import (
	"testing"
	"time"
)

func TestResolvePublishedAtSetsOnFirstPublish(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	got := resolvePublishedAt(nil, StatusPublished, now)
	if got == nil {
		t.Fatal("expected timestamp on first publish")
	}
	if !got.Equal(now) {
		t.Errorf("timestamp = %v, want %v", got, now)
	}
}

func TestResolvePublishedAtDraftStaysEmpty(t *testing.T) {
	if got := resolvePublishedAt(nil, StatusDraft, time.Now()); got != nil {
		t.Errorf("draft should carry no timestamp, got %v", got)
	}
}

func TestResolvePublishedAtNeverCleared(t *testing.T) {
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, status := range []Status{StatusDraft, StatusPublished, StatusArchived} {
		got := resolvePublishedAt(&first, status, now)
		if got == nil {
			t.Fatalf("status %s: timestamp was cleared", status)
		}
		if !got.Equal(first) {
			t.Errorf("status %s: timestamp = %v, want original %v", status, got, first)
		}
	}
}

func TestResolvePublishedAtSecondPrecision(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 71695223, time.UTC)
	got := resolvePublishedAt(nil, StatusPublished, now)
	if got == nil {
		t.Fatal("expected timestamp")
	}
	if got.Nanosecond() != 0 {
		t.Errorf("timestamp carries sub-second precision: %v", got)
	}
	if !got.Equal(now.Truncate(time.Second)) {
		t.Errorf("timestamp = %v, want %v", got, now.Truncate(time.Second))
	}
}

func TestResolvePublishedAtUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	now := time.Date(2024, 6, 1, 15, 0, 0, 0, loc)
	got := resolvePublishedAt(nil, StatusPublished, now)
	if got == nil {
		t.Fatal("expected timestamp")
	}
	if got.Location() != time.UTC {
		t.Errorf("timestamp location = %v, want UTC", got.Location())
	}
}
