// Package seo generates the crawler-facing artifacts: sitemap, RSS
// feed, robots file, search index, and the combined site document.
// Every generator is pure and sorts articles by date descending.
package seo

import (
	"encoding/xml"
	"fmt"

	"github.com/insight-chronicles/chronicler/internal/config"
	"github.com/insight-chronicles/chronicler/internal/store"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc      string `xml:"loc"`
	Priority string `xml:"priority"`
}

// Sitemap renders sitemap.xml: the three fixed top-level pages, one
// entry per configured category, and one per article, newest first.
// No lastmod is emitted.
func Sitemap(cfg *config.Config, articles []store.Article) ([]byte, error) {
	base := cfg.Site.URL
	urls := []sitemapURL{
		{Loc: base + "/", Priority: "1.0"},
		{Loc: base + "/articles.html", Priority: "0.9"},
		{Loc: base + "/search.html", Priority: "0.7"},
	}
	for _, cat := range cfg.Categories {
		urls = append(urls, sitemapURL{Loc: base + "/" + cat.File, Priority: "0.7"})
	}
	for _, a := range store.SortedByDate(articles) {
		urls = append(urls, sitemapURL{Loc: a.URL, Priority: "0.8"})
	}

	set := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding sitemap: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}
