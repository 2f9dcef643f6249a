package communitysite

import "time"

// resolvePublishedAt applies the publication timestamp rule shared by post
// create and update:
//
//   - entering the published state with no recorded timestamp sets it to now;
//   - once set, the timestamp is never cleared or changed, whatever status
//     transitions follow (it records first publish time, not current state);
//   - drafts that have never been published carry no timestamp.
//
// Archived posts never pass through here via a write path; the rule treats
// archived like draft and leaves any existing timestamp alone.
func resolvePublishedAt(current *time.Time, status Status, now time.Time) *time.Time {
	if current != nil {
		return current
	}
	if status == StatusPublished {
		// Second precision, matching what the store persists, so the value
		// handed back to the caller survives a round trip unchanged.
		t := now.UTC().Truncate(time.Second)
		return &t
	}
	return nil
}
