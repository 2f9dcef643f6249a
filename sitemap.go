package communitysite

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (a *App) renderSitemap(c echo.Context, posts []Post) error {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: base + "/"},
		{Loc: base + "/galleries"},
	}
	for _, p := range posts {
		u := sitemapURL{Loc: base + "/posts/" + p.Slug}
		if p.PublishedAt != nil {
			u.LastMod = p.PublishedAt.Format("2006-01-02")
		}
		urls = append(urls, u)
	}
	if categories, err := a.Store.ListActiveCategories(); err == nil {
		for _, cat := range categories {
			urls = append(urls, sitemapURL{Loc: base + "/categories/" + cat.Slug})
		}
	}
	if pages, err := a.Store.MenuPages(); err == nil {
		for _, pg := range pages {
			urls = append(urls, sitemapURL{
				Loc:     base + "/pages/" + pg.Slug,
				LastMod: pg.UpdatedAt.Format("2006-01-02"),
			})
		}
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
