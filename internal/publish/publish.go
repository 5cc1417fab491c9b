// Package publish merges new drafts into the article index, rendering
// each one into a standalone HTML document via literal placeholder
// substitution against the article template.
package publish

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/insight-chronicles/chronicler/internal/config"
	"github.com/insight-chronicles/chronicler/internal/draft"
	"github.com/insight-chronicles/chronicler/internal/store"
)

// Result holds the results of a publish run.
type Result struct {
	Published int
	Skipped   int
}

// Publisher renders drafts against the article template and appends
// the resulting records to the index.
type Publisher struct {
	cfg *config.Config
}

// New creates a new publisher.
func New(cfg *config.Config) *Publisher {
	return &Publisher{cfg: cfg}
}

// Publish merges drafts into articles. Drafts whose slug already
// exists in the index are skipped silently. Each newly published draft
// is written to <root>/<slug> and appended to the returned slice; the
// caller persists the index once the whole batch succeeds.
func (p *Publisher) Publish(articles []store.Article, drafts []draft.Draft) ([]store.Article, *Result, error) {
	if len(drafts) == 0 {
		return articles, &Result{}, nil
	}

	template, err := os.ReadFile(p.cfg.TemplatePath())
	if err != nil {
		return articles, nil, fmt.Errorf("reading article template: %w", err)
	}

	result := &Result{}
	for _, d := range drafts {
		if store.HasSlug(articles, d.Slug) {
			result.Skipped++
			continue
		}

		body, err := d.Body()
		if err != nil {
			return articles, nil, err
		}

		html := renderArticle(string(template), &d, body, p.cfg.Site.Name)
		out := filepath.Join(p.cfg.Paths.Root, d.Slug)
		if err := os.WriteFile(out, []byte(html), 0o644); err != nil {
			return articles, nil, fmt.Errorf("writing article %s: %w", d.Slug, err)
		}

		articles = append(articles, store.Article{
			Title:       d.Title,
			Slug:        d.Slug,
			URL:         p.cfg.ArticleURL(d.Slug),
			Desc:        d.Desc,
			Date:        d.Date,
			Thumb:       d.Thumb,
			ThumbOG:     d.EffectiveThumbOG(),
			Tags:        tagsOrEmpty(d.Tags),
			ContentHTML: body,
		})
		result.Published++
		log.Printf("Published %s (%s)", d.Slug, d.Date)
	}

	return articles, result, nil
}

// renderArticle substitutes the eight named placeholders. Replacement
// is a single pass per key in this fixed order; values containing
// another placeholder token are never re-substituted.
func renderArticle(template string, d *draft.Draft, body, siteName string) string {
	tagline := strings.Join(d.Tags, ", ")
	if tagline == "" {
		tagline = siteName
	}

	replacements := []struct{ token, value string }{
		{"{{TITLE}}", d.Title},
		{"{{DESCRIPTION}}", d.Desc},
		{"{{SLUG}}", d.Slug},
		{"{{DATE}}", d.Date},
		{"{{THUMB}}", d.Thumb},
		{"{{THUMB_OG}}", d.EffectiveThumbOG()},
		{"{{TAGLINE}}", tagline},
		{"{{CONTENT}}", body},
	}

	html := template
	for _, r := range replacements {
		html = strings.ReplaceAll(html, r.token, r.value)
	}
	return html
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
