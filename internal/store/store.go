// Package store persists the canonical article index as a single flat
// JSON document. Articles are append-only: once published they are
// never mutated or deleted.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Article is one published article record as persisted in the index.
type Article struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	URL         string   `json:"url"`
	Desc        string   `json:"desc"`
	Date        string   `json:"date"` // YYYY-MM-DD, not validated on load
	Thumb       string   `json:"thumb"`
	ThumbOG     string   `json:"thumb_og"`
	Tags        []string `json:"tags"`
	ContentHTML string   `json:"content_html"`
}

// Load reads the article index. A missing file is an empty index, not
// an error; malformed JSON is fatal to the caller.
func Load(path string) ([]Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading article index: %w", err)
	}

	var articles []Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("parsing article index: %w", err)
	}
	return articles, nil
}

// Save overwrites the article index with the full sequence. The write
// is not atomic; a crash mid-write can corrupt the index.
func Save(path string, articles []Article) error {
	if articles == nil {
		articles = []Article{}
	}
	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding article index: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing article index: %w", err)
	}
	return nil
}

// SortedByDate returns a copy sorted by date descending. Comparison is
// plain string order, which is correct for ISO dates; the sort is
// stable so insertion order breaks ties.
func SortedByDate(articles []Article) []Article {
	sorted := make([]Article, len(articles))
	copy(sorted, articles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	return sorted
}

// HasSlug reports whether a slug is already present in the index.
func HasSlug(articles []Article, slug string) bool {
	for _, a := range articles {
		if a.Slug == slug {
			return true
		}
	}
	return false
}
