package pressroom

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
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority,omitempty"`
}

func (a *App) renderSitemap(c echo.Context, posts []Post) error {
	urls := []sitemapURL{
		{Loc: BuildURL(a.Config.URL)},
	}
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:        AbsoluteURL(a.Config.URL, p.Path()),
			LastMod:    p.Updated.Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   0.9,
		})
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
