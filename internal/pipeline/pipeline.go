// Package pipeline sequences a full site generation run: load the
// index, publish drafts, persist the index, splice the homepage, then
// write every derived page and SEO artifact. Steps run strictly in
// order in a single pass; the first error aborts the run.
package pipeline

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/insight-chronicles/chronicler/internal/config"
	"github.com/insight-chronicles/chronicler/internal/draft"
	"github.com/insight-chronicles/chronicler/internal/publish"
	"github.com/insight-chronicles/chronicler/internal/render"
	"github.com/insight-chronicles/chronicler/internal/seo"
	"github.com/insight-chronicles/chronicler/internal/store"
)

// StepResult holds the result of a single pipeline step.
type StepResult struct {
	Name    string
	Summary string
}

// Result holds the results of a full generation run.
type Result struct {
	Steps     []StepResult
	Published int
	Articles  int
}

// Pipeline orchestrates site generation for one configured site.
type Pipeline struct {
	cfg      *config.Config
	renderer *render.Renderer
	now      func() time.Time
}

// New creates a new pipeline.
func New(cfg *config.Config) (*Pipeline, error) {
	renderer, err := render.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Pipeline{cfg: cfg, renderer: renderer, now: time.Now}, nil
}

// Run executes the full generation pipeline.
func (p *Pipeline) Run() (*Result, error) {
	r := &Result{}

	// Step 1: publish drafts into the index.
	log.Println("Step 1/4: Publishing drafts...")
	articles, err := p.runPublish(r)
	if err != nil {
		return r, err
	}
	r.Articles = len(articles)

	// Step 2: homepage card region.
	log.Println("Step 2/4: Updating homepage cards...")
	if err := p.runHomepage(r, articles); err != nil {
		return r, err
	}

	// Step 3: full pages.
	log.Println("Step 3/4: Rendering pages...")
	if err := p.runPages(r, articles); err != nil {
		return r, err
	}

	// Step 4: SEO artifacts.
	log.Println("Step 4/4: Writing SEO artifacts...")
	if err := p.runSEO(r, articles); err != nil {
		return r, err
	}

	return r, nil
}

func (p *Pipeline) runPublish(r *Result) ([]store.Article, error) {
	articles, err := store.Load(p.cfg.StorePath())
	if err != nil {
		return nil, err
	}

	drafts, err := draft.ReadAll(p.cfg.DraftsPath())
	if err != nil {
		return nil, err
	}

	articles, pubResult, err := publish.New(p.cfg).Publish(articles, drafts)
	if err != nil {
		return nil, err
	}

	// The index is persisted only after the whole batch succeeds;
	// HTML files already written for this batch are simply rewritten
	// on the next run if we fail before this point.
	if err := store.Save(p.cfg.StorePath(), articles); err != nil {
		return nil, err
	}

	r.Published = pubResult.Published
	r.Steps = append(r.Steps, StepResult{
		Name:    "Publish",
		Summary: fmt.Sprintf("Published %d new article(s), skipped %d existing slug(s), %d total", pubResult.Published, pubResult.Skipped, len(articles)),
	})
	return articles, nil
}

func (p *Pipeline) runHomepage(r *Result, articles []store.Article) error {
	cards, err := p.renderer.Cards(articles)
	if err != nil {
		return err
	}
	if err := render.UpdateHomepage(p.cfg.HomepagePath(), cards); err != nil {
		return err
	}
	r.Steps = append(r.Steps, StepResult{
		Name:    "Homepage",
		Summary: "Refreshed latest-articles region",
	})
	return nil
}

func (p *Pipeline) runPages(r *Result, articles []store.Article) error {
	pages := []struct {
		name   string
		render func() (string, error)
	}{
		{"articles.html", func() (string, error) { return p.renderer.ArticlesPage(articles) }},
		{"search.html", p.renderer.SearchPage},
		{"404.html", p.renderer.NotFoundPage},
	}
	for _, page := range pages {
		html, err := page.render()
		if err != nil {
			return err
		}
		if err := p.writeOutput(page.name, []byte(html)); err != nil {
			return err
		}
	}

	for _, cat := range p.cfg.Categories {
		html, err := p.renderer.CategoryPage(cat, articles)
		if err != nil {
			return err
		}
		if err := p.writeOutput(cat.File, []byte(html)); err != nil {
			return err
		}
	}

	r.Steps = append(r.Steps, StepResult{
		Name:    "Pages",
		Summary: fmt.Sprintf("Wrote articles, search and 404 pages plus %d category page(s)", len(p.cfg.Categories)),
	})
	return nil
}

func (p *Pipeline) runSEO(r *Result, articles []store.Article) error {
	sitemap, err := seo.Sitemap(p.cfg, articles)
	if err != nil {
		return err
	}
	rss, err := seo.RSS(p.cfg, articles, p.now())
	if err != nil {
		return err
	}
	index, err := seo.SearchIndex(articles)
	if err != nil {
		return err
	}
	site, err := seo.SiteJSON(p.cfg, articles)
	if err != nil {
		return err
	}

	outputs := []struct {
		name string
		data []byte
	}{
		{"sitemap.xml", sitemap},
		{"rss.xml", rss},
		{"robots.txt", seo.Robots(p.cfg)},
		{"search-index.json", index},
		{"site.json", site},
	}
	for _, out := range outputs {
		if err := p.writeOutput(out.name, out.data); err != nil {
			return err
		}
	}

	r.Steps = append(r.Steps, StepResult{
		Name:    "SEO",
		Summary: "Wrote sitemap.xml, rss.xml, robots.txt, search-index.json, site.json",
	})
	return nil
}

func (p *Pipeline) writeOutput(name string, data []byte) error {
	path := p.cfg.RootJoin(name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
