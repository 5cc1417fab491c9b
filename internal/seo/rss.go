package seo

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/insight-chronicles/chronicler/internal/config"
	"github.com/insight-chronicles/chronicler/internal/store"
)

// rfc822 is the RSS 2.0 pubDate layout; article dates carry no time of
// day, so published items pin midnight UTC.
const rfc822 = "Mon, 02 Jan 2006 15:04:05 +0000"

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

// RSS renders rss.xml with one item per article, newest first. An
// article date that does not parse as YYYY-MM-DD falls back to the
// generation timestamp, silently.
func RSS(cfg *config.Config, articles []store.Article, now time.Time) ([]byte, error) {
	nowStr := now.UTC().Format(rfc822)

	sorted := store.SortedByDate(articles)
	items := make([]rssItem, 0, len(sorted))
	for _, a := range sorted {
		pubDate := nowStr
		if t, err := time.Parse("2006-01-02", a.Date); err == nil {
			pubDate = t.UTC().Format(rfc822)
		}
		desc := a.Desc
		if desc == "" {
			desc = "New article on " + cfg.Site.Name + "."
		}
		items = append(items, rssItem{
			Title:       a.Title,
			Link:        a.URL,
			GUID:        a.URL,
			Description: desc,
			PubDate:     pubDate,
		})
	}

	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:         cfg.Site.Name,
			Link:          cfg.Site.URL + "/",
			Description:   cfg.Site.Description,
			Language:      cfg.Site.Language,
			LastBuildDate: nowStr,
			Items:         items,
		},
	}
	body, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding rss feed: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}
