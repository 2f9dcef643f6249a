package communitysite

// Visibility and write-authorization rules, consolidated in one place and
// parameterized by the viewer. A failed visibility check is surfaced as a
// not-found outcome at the HTTP boundary so hidden content stays hidden.

// CanViewPost reports whether the viewer may see the post. Drafts and
// archived posts are admin-only.
func CanViewPost(v Viewer, p Post) bool {
	return p.Status == StatusPublished || v.IsAdmin()
}

// CanViewPage reports whether the viewer may see the page.
func CanViewPage(v Viewer, p Page) bool {
	return p.IsActive || v.IsAdmin()
}

// CanManage reports whether the viewer may write admin-only resources
// (categories, pages).
func CanManage(v Viewer) bool {
	return v.IsAdmin()
}

// CanCreateContent reports whether the viewer may create posts and galleries.
// Any authenticated user may; the admin panel itself already requires a
// signed-in active account.
func CanCreateContent(v Viewer) bool {
	return !v.IsAnonymous()
}

// CanEditOwned reports whether the viewer may update or delete a post or
// gallery owned by ownerID.
func CanEditOwned(v Viewer, ownerID int64) bool {
	return v.IsAdmin() || (!v.IsAnonymous() && v.ID == ownerID)
}
