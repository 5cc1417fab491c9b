package seo

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/insight-chronicles/chronicler/internal/config"
	"github.com/insight-chronicles/chronicler/internal/store"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func sampleArticles(cfg *config.Config) []store.Article {
	return []store.Article{
		{
			Title:       "Older",
			Slug:        "older.html",
			URL:         cfg.ArticleURL("older.html"),
			Desc:        "old desc",
			Date:        "2024-06-01",
			Thumb:       "o.webp",
			Tags:        []string{"History"},
			ContentHTML: "<p>Hello <b>World</b></p>",
		},
		{
			Title:       "Newer",
			Slug:        "newer.html",
			URL:         cfg.ArticleURL("newer.html"),
			Desc:        "new desc",
			Date:        "2025-02-02",
			Thumb:       "n.webp",
			Tags:        []string{"Technology"},
			ContentHTML: "<p>x</p>",
		},
	}
}

func TestSitemapEntryCount(t *testing.T) {
	cfg := testConfig(t)
	articles := sampleArticles(cfg)

	out, err := Sitemap(cfg, articles)
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)

	// 3 fixed pages + one per category + one per article.
	want := 3 + len(cfg.Categories) + len(articles)
	if got := strings.Count(s, "<url>"); got != want {
		t.Errorf("expected %d url entries, got %d", want, got)
	}
	if !strings.Contains(s, "<loc>"+cfg.Site.URL+"/</loc>") {
		t.Error("expected homepage entry")
	}
	if !strings.Contains(s, "<priority>1.0</priority>") {
		t.Error("expected homepage priority 1.0")
	}
	if !strings.Contains(s, cfg.Site.URL+"/history.html") {
		t.Error("expected category entry")
	}
	if strings.Contains(s, "lastmod") {
		t.Error("sitemap must not emit lastmod")
	}
	// Articles newest first.
	if strings.Index(s, "newer.html") > strings.Index(s, "older.html") {
		t.Error("expected newest article URL first")
	}
}

func TestRSSParsesAsValidFeed(t *testing.T) {
	cfg := testConfig(t)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	out, err := RSS(cfg, sampleArticles(cfg), now)
	if err != nil {
		t.Fatal(err)
	}

	feed, err := gofeed.NewParser().ParseString(string(out))
	if err != nil {
		t.Fatalf("generated feed does not parse: %v", err)
	}
	if feed.Title != cfg.Site.Name {
		t.Errorf("expected channel title %q, got %q", cfg.Site.Name, feed.Title)
	}
	if len(feed.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(feed.Items))
	}
	if feed.Items[0].Title != "Newer" {
		t.Errorf("expected newest item first, got %q", feed.Items[0].Title)
	}
	if feed.Items[0].GUID != cfg.ArticleURL("newer.html") {
		t.Errorf("expected guid = link, got %q", feed.Items[0].GUID)
	}
	if feed.Items[0].PublishedParsed == nil {
		t.Fatal("expected parseable pubDate")
	}
	if got := feed.Items[0].PublishedParsed.UTC().Format("2006-01-02"); got != "2025-02-02" {
		t.Errorf("expected pubDate from article date, got %s", got)
	}
}

func TestRSSBadDateFallsBackToNow(t *testing.T) {
	cfg := testConfig(t)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	articles := []store.Article{{Title: "Bad", URL: cfg.ArticleURL("bad.html"), Date: "not-a-date"}}

	out, err := RSS(cfg, articles, now)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "Sat, 01 Mar 2025 12:00:00 +0000") {
		t.Errorf("expected fallback pubDate, got:\n%s", out)
	}
}

func TestRobots(t *testing.T) {
	cfg := testConfig(t)
	out := string(Robots(cfg))
	if !strings.Contains(out, "User-agent: *") || !strings.Contains(out, "Allow: /") {
		t.Error("expected allow-all directives")
	}
	if !strings.Contains(out, "Sitemap: "+cfg.Site.URL+"/sitemap.xml") {
		t.Error("expected sitemap pointer")
	}
}

func TestStripHTML(t *testing.T) {
	cases := []struct{ in, want string }{
		{"<p>Hello <b>World</b></p>", "Hello World"},
		{"<p>x</p>", "x"},
		{"", ""},
		{"plain text", "plain text"},
		{"<div>\n  spaced\n\n  out\n</div>", "spaced out"},
	}
	for _, c := range cases {
		if got := StripHTML(c.in); got != c.want {
			t.Errorf("StripHTML(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSearchIndex(t *testing.T) {
	cfg := testConfig(t)
	out, err := SearchIndex(sampleArticles(cfg))
	if err != nil {
		t.Fatal(err)
	}

	var entries []IndexEntry
	if err := json.Unmarshal(out, &entries); err != nil {
		t.Fatalf("search index is not valid JSON: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Slug != "newer.html" {
		t.Errorf("expected newest entry first, got %q", entries[0].Slug)
	}
	if entries[1].Body != "Hello World" {
		t.Errorf("expected stripped body, got %q", entries[1].Body)
	}
	if entries[0].Tags == nil {
		t.Error("expected tags array, not null")
	}
}

func TestSiteJSON(t *testing.T) {
	cfg := testConfig(t)
	articles := sampleArticles(cfg)

	out, err := SiteJSON(cfg, articles)
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Site struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"site"`
		Articles []store.Article `json:"articles"`
	}
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("site document is not valid JSON: %v", err)
	}
	if doc.Site.Name != cfg.Site.Name {
		t.Errorf("unexpected site name %q", doc.Site.Name)
	}
	// Stored order, not date order.
	if len(doc.Articles) != 2 || doc.Articles[0].Slug != "older.html" {
		t.Error("expected articles in stored order")
	}
}
