package seo

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/insight-chronicles/chronicler/internal/config"
	"github.com/insight-chronicles/chronicler/internal/store"
)

// IndexEntry is one search-index record consumed by the search page's
// client-side filter.
type IndexEntry struct {
	Title string   `json:"title"`
	Slug  string   `json:"slug"`
	URL   string   `json:"url"`
	Desc  string   `json:"desc"`
	Date  string   `json:"date"`
	Thumb string   `json:"thumb"`
	Tags  []string `json:"tags"`
	Body  string   `json:"body"`
}

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// StripHTML is a best-effort plain-text extraction: markup tags become
// spaces and runs of whitespace collapse. Entities stay encoded and
// script/style contents are kept; the search page escapes entries
// client-side before display, so this is sufficient for filtering.
func StripHTML(html string) string {
	text := tagPattern.ReplaceAllString(html, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// SearchIndex renders search-index.json: one entry per article, newest
// first, with a stripped-text body for substring matching.
func SearchIndex(articles []store.Article) ([]byte, error) {
	sorted := store.SortedByDate(articles)
	entries := make([]IndexEntry, 0, len(sorted))
	for _, a := range sorted {
		entries = append(entries, IndexEntry{
			Title: a.Title,
			Slug:  a.Slug,
			URL:   a.URL,
			Desc:  a.Desc,
			Date:  a.Date,
			Thumb: a.Thumb,
			Tags:  tagsOrEmpty(a.Tags),
			Body:  StripHTML(a.ContentHTML),
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding search index: %w", err)
	}
	return append(data, '\n'), nil
}

// siteDocument is the combined site-metadata document (site.json).
type siteDocument struct {
	Site     siteInfo        `json:"site"`
	Articles []store.Article `json:"articles"`
}

type siteInfo struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Language    string `json:"language"`
}

// SiteJSON renders site.json: site info plus the full article index in
// stored order.
func SiteJSON(cfg *config.Config, articles []store.Article) ([]byte, error) {
	if articles == nil {
		articles = []store.Article{}
	}
	doc := siteDocument{
		Site: siteInfo{
			Name:        cfg.Site.Name,
			URL:         cfg.Site.URL,
			Description: cfg.Site.Description,
			Language:    cfg.Site.Language,
		},
		Articles: articles,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding site document: %w", err)
	}
	return append(data, '\n'), nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
