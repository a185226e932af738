package showcase

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/showcase/content"
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

var sitemapPages = [][]string{
	{},
	{"case-studies"},
	{"blog"},
	{"pricing"},
	{"about"},
	{"contact"},
}

func (a *App) renderSitemap(c echo.Context, studies []content.CaseStudy, posts []content.BlogPost) error {
	base := a.Config.URL
	urls := make([]sitemapURL, 0, len(sitemapPages)+len(studies)+len(posts))
	for _, p := range sitemapPages {
		urls = append(urls, sitemapURL{Loc: BuildURL(base, p...)})
	}
	for _, cs := range studies {
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, "case-studies", cs.ID),
			LastMod: cs.CreatedAt.Format("2006-01-02"),
		})
	}
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, "blog", p.ID),
			LastMod: p.CreatedAt.Format("2006-01-02"),
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
