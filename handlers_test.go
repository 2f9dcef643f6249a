package communitysite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a := &App{
		Config:       SiteConfig{SessionSecret: "test-secret"},
		Echo:         echo.New(),
		Store:        setupTestStore(t),
		Log:          zerolog.Nop(),
		loginLimiter: newLoginLimiter(5, time.Minute),
	}
	a.Config.setDefaults()
	return a
}

func doGET(a *App, path string) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	return rec, a.Echo.NewContext(req, rec)
}

func doForm(a *App, path string, form url.Values) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return rec, a.Echo.NewContext(req, rec)
}

func decodePage(t *testing.T, rec *httptest.ResponseRecorder) pageDocument {
	t.Helper()
	var doc pageDocument
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("response is not a page document: %v\n%s", err, rec.Body.String())
	}
	return doc
}

func TestHealthCheck(t *testing.T) {
	a := newTestApp(t)
	rec, c := doGET(a, "/health-check")

	if err := a.handleHealthCheck(c); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf(`status field = %q, want "ok"`, body["status"])
	}
	if _, err := time.Parse(time.RFC3339, body["timestamp"]); err != nil {
		t.Errorf("timestamp not RFC3339: %q", body["timestamp"])
	}
}

func TestHomeRendersWelcome(t *testing.T) {
	a := newTestApp(t)
	u := seedUser(t, a.Store, RoleAdmin)
	c := seedCategory(t, a.Store, "Events")
	seedPost(t, a.Store, "Hello", StatusPublished, u.ID, c.ID)

	rec, ctx := doGET(a, "/")
	if err := a.handleHome(ctx); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	doc := decodePage(t, rec)
	if doc.Component != "welcome" {
		t.Errorf("component = %q", doc.Component)
	}
	for _, key := range []string{"featuredPosts", "recentPosts", "categories", "featuredGalleries", "menuPages"} {
		if _, ok := doc.Props[key]; !ok {
			t.Errorf("missing prop %q", key)
		}
	}
}

func TestDraftPostIsNotFoundForAnonymous(t *testing.T) {
	a := newTestApp(t)
	u := seedUser(t, a.Store, RoleAdmin)
	cat := seedCategory(t, a.Store, "Events")
	p := seedPost(t, a.Store, "Secret Draft", StatusDraft, u.ID, cat.ID)

	rec, ctx := doGET(a, "/posts/"+p.Slug)
	ctx.SetParamNames("slug")
	ctx.SetParamValues(p.Slug)

	if err := a.handlePost(ctx); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	doc := decodePage(t, rec)
	if doc.Component != "errors/not-found" {
		t.Errorf("component = %q", doc.Component)
	}

	// The hidden render must not have counted a view.
	got, err := a.Store.GetPostByID(p.ID)
	if err != nil {
		t.Fatalf("GetPostByID failed: %v", err)
	}
	if got.Views != 0 {
		t.Errorf("Views = %d after hidden render, want 0", got.Views)
	}
}

func TestPublishedPostRendersAndCountsView(t *testing.T) {
	a := newTestApp(t)
	u := seedUser(t, a.Store, RoleAdmin)
	cat := seedCategory(t, a.Store, "Events")
	p := seedPost(t, a.Store, "Open Post", StatusPublished, u.ID, cat.ID)

	rec, ctx := doGET(a, "/posts/"+p.Slug)
	ctx.SetParamNames("slug")
	ctx.SetParamValues(p.Slug)

	if err := a.handlePost(ctx); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	doc := decodePage(t, rec)
	if doc.Component != "blog/post" {
		t.Errorf("component = %q", doc.Component)
	}
	if _, ok := doc.Props["relatedPosts"]; !ok {
		t.Error("missing relatedPosts prop")
	}

	got, err := a.Store.GetPostByID(p.ID)
	if err != nil {
		t.Fatalf("GetPostByID failed: %v", err)
	}
	if got.Views != 1 {
		t.Errorf("Views = %d, want 1", got.Views)
	}
}

func TestMissingCategoryIsNotFound(t *testing.T) {
	a := newTestApp(t)
	rec, ctx := doGET(a, "/categories/nope")
	ctx.SetParamNames("slug")
	ctx.SetParamValues("nope")

	if err := a.handleCategory(ctx); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestInactivePageIsNotFoundForAnonymous(t *testing.T) {
	a := newTestApp(t)
	u := seedUser(t, a.Store, RoleAdmin)
	pg := Page{Title: "Hidden Page", Content: "c", Template: "default", IsActive: false, UserID: u.ID}
	if err := a.Store.CreatePage(&pg); err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}

	rec, ctx := doGET(a, "/pages/"+pg.Slug)
	ctx.SetParamNames("slug")
	ctx.SetParamValues(pg.Slug)

	if err := a.handlePage(ctx); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestAdminPostStoreForbiddenForAnonymous(t *testing.T) {
	a := newTestApp(t)
	rec, ctx := doForm(a, "/admin/posts", url.Values{
		"title":       {"New Post"},
		"content":     {"Body"},
		"status":      {"draft"},
		"category_id": {"1"},
	})

	if err := a.handleAdminPostStore(ctx); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestLoginFailureIsRateLimited(t *testing.T) {
	a := newTestApp(t)
	seedUser(t, a.Store, RoleAdmin)

	form := url.Values{"email": {"nobody@example.org"}, "password": {"wrong"}}
	for i := 0; i < 5; i++ {
		rec, ctx := doForm(a, "/login", form)
		if err := a.handleLogin(ctx); err != nil {
			t.Fatalf("attempt %d failed: %v", i, err)
		}
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("attempt %d status = %d, want 422", i, rec.Code)
		}
	}

	rec, ctx := doForm(a, "/login", form)
	if err := a.handleLogin(ctx); err != nil {
		t.Fatalf("limited attempt failed: %v", err)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rec.Code)
	}
}

func TestRobotsTxt(t *testing.T) {
	a := newTestApp(t)
	rec, ctx := doGET(a, "/robots.txt")
	if err := a.handleRobots(ctx); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Disallow: /admin/") {
		t.Errorf("robots.txt missing admin disallow:\n%s", body)
	}
	if !strings.Contains(body, "/sitemap.xml") {
		t.Errorf("robots.txt missing sitemap link:\n%s", body)
	}
}

func TestSitemapListsPublishedPostsOnly(t *testing.T) {
	a := newTestApp(t)
	u := seedUser(t, a.Store, RoleAdmin)
	cat := seedCategory(t, a.Store, "Events")
	pub := seedPost(t, a.Store, "Public Post", StatusPublished, u.ID, cat.ID)
	draft := seedPost(t, a.Store, "Draft Post", StatusDraft, u.ID, cat.ID)

	rec, ctx := doGET(a, "/sitemap.xml")
	if err := a.handleSitemap(ctx); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "/posts/"+pub.Slug) {
		t.Errorf("sitemap missing published post:\n%s", body)
	}
	if strings.Contains(body, "/posts/"+draft.Slug) {
		t.Errorf("sitemap leaks draft post:\n%s", body)
	}
}

func TestFeedRendersRSS(t *testing.T) {
	a := newTestApp(t)
	u := seedUser(t, a.Store, RoleAdmin)
	cat := seedCategory(t, a.Store, "Events")
	p := seedPost(t, a.Store, "Feed Post", StatusPublished, u.ID, cat.ID)

	rec, ctx := doGET(a, "/feed.xml")
	if err := a.handleFeed(ctx); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<rss") || !strings.Contains(body, p.Title) {
		t.Errorf("feed body:\n%s", body)
	}
}
