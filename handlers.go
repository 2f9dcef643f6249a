package communitysite

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// handleHealthCheck is the unauthenticated liveness probe.
func (a *App) handleHealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleHome serves the landing page: featured and recent posts, active
// categories with published-post counts, featured galleries, and menu pages.
func (a *App) handleHome(c echo.Context) error {
	featured, _, err := a.Store.ListPosts(featuredPostsSpec())
	if err != nil {
		return err
	}
	recent, _, err := a.Store.ListPosts(recentPostsSpec())
	if err != nil {
		return err
	}
	categories, err := a.Store.ListActiveCategories()
	if err != nil {
		return err
	}
	galleries, _, err := a.Store.ListGalleries(featuredGalleriesSpec())
	if err != nil {
		return err
	}
	menuPages, err := a.Store.MenuPages()
	if err != nil {
		return err
	}
	return page(c, "welcome", echo.Map{
		"featuredPosts":     featured,
		"recentPosts":       recent,
		"categories":        categories,
		"featuredGalleries": galleries,
		"menuPages":         menuPages,
	})
}

// handlePost serves a single post. Hidden posts 404 rather than 403 so their
// existence is not leaked; visible renders bump the view counter.
func (a *App) handlePost(c echo.Context) error {
	viewer := a.currentViewer(c)
	post, err := a.Store.GetPostBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundPage(c)
		}
		return err
	}
	if !CanViewPost(viewer, post) {
		return notFoundPage(c)
	}
	if err := a.Store.IncrementViews(post.ID); err != nil {
		return err
	}
	post.Views++
	related, _, err := a.Store.ListPosts(relatedPostsSpec(post))
	if err != nil {
		return err
	}
	return page(c, "blog/post", echo.Map{
		"post":         post,
		"relatedPosts": related,
	})
}

// handleCategory serves the published posts of one category, paginated.
func (a *App) handleCategory(c echo.Context) error {
	category, err := a.Store.GetCategoryBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundPage(c)
		}
		return err
	}
	posts, pg, err := a.Store.ListPosts(categoryPostsSpec(category.ID, pageParam(c)))
	if err != nil {
		return err
	}
	return page(c, "blog/category", echo.Map{
		"category":   category,
		"posts":      posts,
		"pagination": pg,
	})
}

// handlePage serves a static page; inactive pages are admin-only and 404 for
// everyone else.
func (a *App) handlePage(c echo.Context) error {
	viewer := a.currentViewer(c)
	pg, err := a.Store.GetPageBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundPage(c)
		}
		return err
	}
	if !CanViewPage(viewer, pg) {
		return notFoundPage(c)
	}
	return page(c, "blog/page", echo.Map{"page": pg})
}

// handleGalleries serves the public gallery index: active galleries by event
// date, each truncated to its first images.
func (a *App) handleGalleries(c echo.Context) error {
	galleries, pg, err := a.Store.ListGalleries(publicGalleriesSpec(pageParam(c)))
	if err != nil {
		return err
	}
	return page(c, "blog/galleries", echo.Map{
		"galleries":  galleries,
		"pagination": pg,
	})
}

// handleGallery serves one gallery with all of its images.
func (a *App) handleGallery(c echo.Context) error {
	gallery, err := a.Store.GetGalleryBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundPage(c)
		}
		return err
	}
	return page(c, "blog/gallery", echo.Map{"gallery": gallery})
}

// handleRobots generates robots.txt from the site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, _, err := a.Store.ListPosts(postSpec{status: StatusPublished, orderBy: orderByPublished})
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, _, err := a.Store.ListPosts(recentPostsSpec())
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

// pageParam reads the ?page query parameter, defaulting to the first page.
func pageParam(c echo.Context) int {
	n, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// idParam reads a numeric path parameter.
func idParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
