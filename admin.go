package communitysite

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// --- authentication ---

func (a *App) handleLoginPage(c echo.Context) error {
	return page(c, "auth/login", echo.Map{"csrf_token": csrfToken(c)})
}

func (a *App) handleLogin(c echo.Context) error {
	if !a.loginLimiter.Check(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	var in loginInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	u, err := a.Store.GetUserByEmail(in.Email)
	if err != nil || !u.IsActive ||
		bcrypt.CompareHashAndPassword([]byte(u.PasswordHash()), []byte(in.Password)) != nil {
		a.loginLimiter.Record(c.RealIP())
		return pageStatus(c, http.StatusUnprocessableEntity, "auth/login", echo.Map{
			"csrf_token": csrfToken(c),
			"errors":     echo.Map{"email": "These credentials do not match our records."},
		})
	}
	if err := setUserSession(c, u.ID); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}

func (a *App) handleLogout(c echo.Context) error {
	if err := clearUserSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// --- dashboard ---

func (a *App) handleAdminDashboard(c echo.Context) error {
	stats, err := a.Store.Stats()
	if err != nil {
		return err
	}
	recentPosts, _, err := a.Store.ListPosts(recentAdminPostsSpec(5))
	if err != nil {
		return err
	}
	recentGalleries, _, err := a.Store.ListGalleries(recentAdminGalleriesSpec(3))
	if err != nil {
		return err
	}
	return page(c, "admin/dashboard", echo.Map{
		"stats": stats,
		"recentActivity": echo.Map{
			"posts":     recentPosts,
			"galleries": recentGalleries,
		},
	})
}

// --- posts ---

func (a *App) handleAdminPosts(c echo.Context) error {
	posts, pg, err := a.Store.ListPosts(adminPostsSpec(pageParam(c)))
	if err != nil {
		return err
	}
	return page(c, "admin/posts/index", echo.Map{"posts": posts, "pagination": pg})
}

func (a *App) handleAdminPostCreate(c echo.Context) error {
	categories, err := a.Store.ListCategoriesByName()
	if err != nil {
		return err
	}
	return page(c, "admin/posts/create", echo.Map{
		"categories": categories,
		"csrf_token": csrfToken(c),
	})
}

func (a *App) handleAdminPostStore(c echo.Context) error {
	viewer := a.currentViewer(c)
	if !CanCreateContent(viewer) {
		return forbiddenPage(c)
	}
	var in postInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	errs := in.validate()
	if len(errs) == 0 {
		if _, err := a.Store.GetCategoryByID(in.CategoryID); err != nil {
			if errors.Is(err, ErrNotFound) {
				errs["category_id"] = "the selected category does not exist"
			} else {
				return err
			}
		}
	}
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}
	post := Post{
		Title:         in.Title,
		Excerpt:       in.Excerpt,
		Content:       in.Content,
		FeaturedImage: in.FeaturedImage,
		Status:        Status(in.Status),
		IsFeatured:    in.IsFeatured,
		UserID:        viewer.ID,
		CategoryID:    in.CategoryID,
	}
	if err := a.Store.CreatePost(&post); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

func (a *App) handleAdminPostShow(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return notFoundPage(c)
	}
	post, err := a.Store.GetPostByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundPage(c)
		}
		return err
	}
	return page(c, "admin/posts/show", echo.Map{"post": post})
}

func (a *App) handleAdminPostEdit(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return notFoundPage(c)
	}
	post, err := a.Store.GetPostByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundPage(c)
		}
		return err
	}
	categories, err := a.Store.ListCategoriesByName()
	if err != nil {
		return err
	}
	return page(c, "admin/posts/edit", echo.Map{
		"post":       post,
		"categories": categories,
		"csrf_token": csrfToken(c),
	})
}

func (a *App) handleAdminPostUpdate(c echo.Context) error {
	viewer := a.currentViewer(c)
	id, err := idParam(c, "id")
	if err != nil {
		return notFoundPage(c)
	}
	existing, err := a.Store.GetPostByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundPage(c)
		}
		return err
	}
	if !CanEditOwned(viewer, existing.UserID) {
		return forbiddenPage(c)
	}
	var in postInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	errs := in.validate()
	if len(errs) == 0 {
		if _, err := a.Store.GetCategoryByID(in.CategoryID); err != nil {
			if errors.Is(err, ErrNotFound) {
				errs["category_id"] = "the selected category does not exist"
			} else {
				return err
			}
		}
	}
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}
	post := existing
	post.Title = in.Title
	post.Excerpt = in.Excerpt
	post.Content = in.Content
	post.FeaturedImage = in.FeaturedImage
	post.Status = Status(in.Status)
	post.IsFeatured = in.IsFeatured
	post.CategoryID = in.CategoryID
	if err := a.Store.UpdatePost(&post); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleAdminPostDelete(c echo.Context) error {
	viewer := a.currentViewer(c)
	id, err := idParam(c, "id")
	if err != nil {
		return notFoundPage(c)
	}
	existing, err := a.Store.GetPostByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundPage(c)
		}
		return err
	}
	if !CanEditOwned(viewer, existing.UserID) {
		return forbiddenPage(c)
	}
	if err := a.Store.DeletePost(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- categories (admin-only resource) ---

func (a *App) handleAdminCategories(c echo.Context) error {
	categories, pg, err := a.Store.AdminListCategories(pageParam(c))
	if err != nil {
		return err
	}
	return page(c, "admin/categories/index", echo.Map{"categories": categories, "pagination": pg})
}

func (a *App) handleAdminCategoryCreate(c echo.Context) error {
	return page(c, "admin/categories/create", echo.Map{"csrf_token": csrfToken(c)})
}

func (a *App) handleAdminCategoryStore(c echo.Context) error {
	if !CanManage(a.currentViewer(c)) {
		return forbiddenPage(c)
	}
	var in categoryInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	if errs := in.validate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}
	category := Category{
		Name:      in.Name,
		Color:     in.Color,
		IsActive:  in.IsActive == nil || *in.IsActive,
		SortOrder: in.SortOrder,
	}
	if err := a.Store.CreateCategory(&category); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

func (a *App) handleAdminCategoryShow(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return notFoundPage(c)
	}
	category, err := a.Store.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundPage(c)
		}
		return err
	}
	if category.PostCount, err = a.Store.CountPostsInCategory(id); err != nil {
		return err
	}
	return page(c, "admin/categories/show", echo.Map{"category": category})
}

func (a *App) handleAdminCategoryEdit(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return notFoundPage(c)
	}
	category, err := a.Store.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundPage(c)
		}
		return err
	}
	return page(c, "admin/categories/edit", echo.Map{
		"category":   category,
		"csrf_token": csrfToken(c),
	})
}

func (a *App) handleAdminCategoryUpdate(c echo.Context) error {
	if !CanManage(a.currentViewer(c)) {
		return forbiddenPage(c)
	}
	id, err := idParam(c, "id")
	if err != nil {
		return notFoundPage(c)
	}
	existing, err := a.Store.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundPage(c)
		}
		return err
	}
	var in categoryInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	if errs := in.validate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}
	category := existing
	category.Name = in.Name
	category.Color = in.Color
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}
	category.SortOrder = in.SortOrder
	if err := a.Store.UpdateCategory(&category); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

func (a *App) handleAdminCategoryDelete(c echo.Context) error {
	if !CanManage(a.currentViewer(c)) {
		return forbiddenPage(c)
	}
	id, err := idParam(c, "id")
	if err != nil {
		return notFoundPage(c)
	}
	if err := a.Store.DeleteCategory(id); err != nil {
		if errors.Is(err, ErrConflict) {
			return conflictPage(c, "Cannot delete category with existing posts.")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- pages (admin-only resource) ---

func (a *App) handleAdminPages(c echo.Context) error {
	pages, pg, err := a.Store.AdminListPages(pageParam(c))
	if err != nil {
		return err
	}
	return page(c, "admin/pages/index", echo.Map{"pages": pages, "pagination": pg})
}

func (a *App) handleAdminPageCreate(c echo.Context) error {
	return page(c, "admin/pages/create", echo.Map{"csrf_token": csrfToken(c)})
}

func (a *App) handleAdminPageStore(c echo.Context) error {
	viewer := a.currentViewer(c)
	if !CanManage(viewer) {
		return forbiddenPage(c)
	}
	var in pageInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	if errs := in.validate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}
	pg := Page{
		Title:      in.Title,
		Content:    in.Content,
		Excerpt:    in.Excerpt,
		Template:   in.Template,
		IsActive:   in.IsActive == nil || *in.IsActive,
		ShowInMenu: in.ShowInMenu,
		MenuOrder:  in.MenuOrder,
		Meta:       in.Meta,
		UserID:     viewer.ID,
	}
	if err := a.Store.CreatePage(&pg); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, pg)
}

func (a *App) handleAdminPageShow(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return notFoundPage(c)
	}
	pg, err := a.Store.GetPageByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundPage(c)
		}
		return err
	}
	return page(c, "admin/pages/show", echo.Map{"page": pg})
}

func (a *App) handleAdminPageEdit(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return notFoundPage(c)
	}
	pg, err := a.Store.GetPageByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundPage(c)
		}
		return err
	}
	return page(c, "admin/pages/edit", echo.Map{
		"page":       pg,
		"csrf_token": csrfToken(c),
	})
}

func (a *App) handleAdminPageUpdate(c echo.Context) error {
	if !CanManage(a.currentViewer(c)) {
		return forbiddenPage(c)
	}
	id, err := idParam(c, "id")
	if err != nil {
		return notFoundPage(c)
	}
	existing, err := a.Store.GetPageByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundPage(c)
		}
		return err
	}
	var in pageInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	if errs := in.validate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}
	pg := existing
	pg.Title = in.Title
	pg.Content = in.Content
	pg.Excerpt = in.Excerpt
	pg.Template = in.Template
	if in.IsActive != nil {
		pg.IsActive = *in.IsActive
	}
	pg.ShowInMenu = in.ShowInMenu
	pg.MenuOrder = in.MenuOrder
	pg.Meta = in.Meta
	if err := a.Store.UpdatePage(&pg); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pg)
}

func (a *App) handleAdminPageDelete(c echo.Context) error {
	if !CanManage(a.currentViewer(c)) {
		return forbiddenPage(c)
	}
	id, err := idParam(c, "id")
	if err != nil {
		return notFoundPage(c)
	}
	if _, err := a.Store.GetPageByID(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundPage(c)
		}
		return err
	}
	if err := a.Store.DeletePage(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- galleries ---

func (a *App) handleAdminGalleries(c echo.Context) error {
	galleries, pg, err := a.Store.ListGalleries(adminGalleriesSpec(pageParam(c)))
	if err != nil {
		return err
	}
	return page(c, "admin/galleries/index", echo.Map{"galleries": galleries, "pagination": pg})
}

func (a *App) handleAdminGalleryCreate(c echo.Context) error {
	return page(c, "admin/galleries/create", echo.Map{"csrf_token": csrfToken(c)})
}

func (a *App) handleAdminGalleryStore(c echo.Context) error {
	viewer := a.currentViewer(c)
	if !CanCreateContent(viewer) {
		return forbiddenPage(c)
	}
	var in galleryInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	if errs := in.validate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}
	gallery := Gallery{
		Title:       in.Title,
		Description: in.Description,
		CoverImage:  in.CoverImage,
		IsActive:    in.IsActive == nil || *in.IsActive,
		IsFeatured:  in.IsFeatured,
		SortOrder:   in.SortOrder,
		EventDate:   in.eventDate(),
		UserID:      viewer.ID,
	}
	if err := a.Store.CreateGallery(&gallery); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, gallery)
}

func (a *App) handleAdminGalleryShow(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return notFoundPage(c)
	}
	gallery, err := a.Store.GetGalleryByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundPage(c)
		}
		return err
	}
	if gallery.Images, err = a.Store.galleryImages(gallery.ID, 0); err != nil {
		return err
	}
	return page(c, "admin/galleries/show", echo.Map{"gallery": gallery})
}

func (a *App) handleAdminGalleryEdit(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return notFoundPage(c)
	}
	gallery, err := a.Store.GetGalleryByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundPage(c)
		}
		return err
	}
	return page(c, "admin/galleries/edit", echo.Map{
		"gallery":    gallery,
		"csrf_token": csrfToken(c),
	})
}

func (a *App) handleAdminGalleryUpdate(c echo.Context) error {
	viewer := a.currentViewer(c)
	id, err := idParam(c, "id")
	if err != nil {
		return notFoundPage(c)
	}
	existing, err := a.Store.GetGalleryByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundPage(c)
		}
		return err
	}
	if !CanEditOwned(viewer, existing.UserID) {
		return forbiddenPage(c)
	}
	var in galleryInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	if errs := in.validate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}
	gallery := existing
	gallery.Title = in.Title
	gallery.Description = in.Description
	gallery.CoverImage = in.CoverImage
	if in.IsActive != nil {
		gallery.IsActive = *in.IsActive
	}
	gallery.IsFeatured = in.IsFeatured
	gallery.SortOrder = in.SortOrder
	gallery.EventDate = in.eventDate()
	if err := a.Store.UpdateGallery(&gallery); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, gallery)
}

func (a *App) handleAdminGalleryDelete(c echo.Context) error {
	viewer := a.currentViewer(c)
	id, err := idParam(c, "id")
	if err != nil {
		return notFoundPage(c)
	}
	existing, err := a.Store.GetGalleryByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundPage(c)
		}
		return err
	}
	if !CanEditOwned(viewer, existing.UserID) {
		return forbiddenPage(c)
	}
	if err := a.Store.DeleteGallery(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
