package communitysite

import "testing"

var (
	anonymous   = Viewer{}
	regularUser = Viewer{ID: 2, Name: "Member", Role: RoleUser}
	adminUser   = Viewer{ID: 1, Name: "Admin", Role: RoleAdmin}
)

func TestCanViewPost(t *testing.T) {
	cases := []struct {
		name   string
		viewer Viewer
		status Status
		want   bool
	}{
		{"anonymous sees published", anonymous, StatusPublished, true},
		{"anonymous blocked from draft", anonymous, StatusDraft, false},
		{"anonymous blocked from archived", anonymous, StatusArchived, false},
		{"regular user sees published", regularUser, StatusPublished, true},
		{"regular user blocked from draft", regularUser, StatusDraft, false},
		{"regular user blocked from archived", regularUser, StatusArchived, false},
		{"admin sees published", adminUser, StatusPublished, true},
		{"admin sees draft", adminUser, StatusDraft, true},
		{"admin sees archived", adminUser, StatusArchived, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanViewPost(tc.viewer, Post{Status: tc.status}); got != tc.want {
				t.Errorf("CanViewPost = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanViewPage(t *testing.T) {
	active := Page{IsActive: true}
	inactive := Page{IsActive: false}

	if !CanViewPage(anonymous, active) {
		t.Error("anonymous should see active page")
	}
	if CanViewPage(anonymous, inactive) {
		t.Error("anonymous should not see inactive page")
	}
	if CanViewPage(regularUser, inactive) {
		t.Error("regular user should not see inactive page")
	}
	if !CanViewPage(adminUser, inactive) {
		t.Error("admin should see inactive page")
	}
}

func TestCanManage(t *testing.T) {
	if CanManage(anonymous) {
		t.Error("anonymous should not manage")
	}
	if CanManage(regularUser) {
		t.Error("regular user should not manage")
	}
	if !CanManage(adminUser) {
		t.Error("admin should manage")
	}
}

func TestCanCreateContent(t *testing.T) {
	if CanCreateContent(anonymous) {
		t.Error("anonymous should not create content")
	}
	if !CanCreateContent(regularUser) {
		t.Error("regular user should create content")
	}
	if !CanCreateContent(adminUser) {
		t.Error("admin should create content")
	}
}

func TestCanEditOwned(t *testing.T) {
	if !CanEditOwned(adminUser, 99) {
		t.Error("admin edits anything")
	}
	if !CanEditOwned(regularUser, regularUser.ID) {
		t.Error("owner edits own content")
	}
	if CanEditOwned(regularUser, 99) {
		t.Error("non-owner must not edit")
	}
	if CanEditOwned(anonymous, 0) {
		t.Error("anonymous must not edit even when owner id is zero")
	}
}

// An admin viewer with a zero ID never occurs in practice, but the zero value
// must stay anonymous no matter what role it claims.
func TestZeroViewerIsAnonymous(t *testing.T) {
	v := Viewer{Role: RoleAdmin}
	if v.IsAdmin() {
		t.Error("zero-ID viewer must not be admin")
	}
	if !v.IsAnonymous() {
		t.Error("zero-ID viewer must be anonymous")
	}
}
