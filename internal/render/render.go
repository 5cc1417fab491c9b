// Package render produces the site's HTML documents from the article
// index. All renderers are pure: they return documents as strings and
// perform no I/O, except UpdateHomepage, which splices the card
// fragment into the marker-managed region of an existing homepage.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/insight-chronicles/chronicler/internal/config"
	"github.com/insight-chronicles/chronicler/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// Markers delimit the auto-managed latest-articles region on the
// homepage. Both literals must match the homepage document exactly.
const (
	MarkerStart = "<!-- AUTO-LATEST-ARTICLES:START -->"
	MarkerEnd   = "<!-- AUTO-LATEST-ARTICLES:END -->"
)

// Renderer renders page shells and fragments for one site.
type Renderer struct {
	cfg   *config.Config
	pages map[string]*template.Template
	cards *template.Template
}

// pageData is the payload every page template receives.
type pageData struct {
	Site     config.Site
	Title    string
	Desc     string
	TopStrip string
	Nav      string // active nav link; empty hides the header entirely
	NoIndex  bool
	Articles []store.Article
	Category config.Category
}

var funcMap = template.FuncMap{
	"topTags": func(tags []string) []string {
		if len(tags) > 3 {
			return tags[:3]
		}
		return tags
	},
}

// New parses the embedded page templates. Each page gets its own clone
// of the base shell with its {{define "content"}} block.
func New(cfg *config.Config) (*Renderer, error) {
	base, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	pageNames := []string{"articles.html", "category.html", "search.html", "notfound.html"}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base for %s: %w", name, err)
		}
		if _, err := clone.ParseFS(templateFS, "templates/"+name); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = clone
	}

	cards, err := template.New("cards.html").Funcs(funcMap).ParseFS(templateFS, "templates/cards.html")
	if err != nil {
		return nil, fmt.Errorf("parsing cards template: %w", err)
	}

	return &Renderer{cfg: cfg, pages: pages, cards: cards}, nil
}

func (r *Renderer) renderPage(name string, data pageData) (string, error) {
	data.Site = r.cfg.Site
	var buf bytes.Buffer
	if err := r.pages[name].ExecuteTemplate(&buf, "base.html", data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}

// Cards renders the homepage fragment: the newest articles, capped at
// the configured card limit. It is a fragment, not a full document.
func (r *Renderer) Cards(articles []store.Article) (string, error) {
	sorted := store.SortedByDate(articles)
	if len(sorted) > r.cfg.Homepage.MaxCards {
		sorted = sorted[:r.cfg.Homepage.MaxCards]
	}
	var buf bytes.Buffer
	if err := r.cards.Execute(&buf, pageData{Site: r.cfg.Site, Articles: sorted}); err != nil {
		return "", fmt.Errorf("rendering homepage cards: %w", err)
	}
	return buf.String(), nil
}

// ArticlesPage renders the full articles listing, newest first.
func (r *Renderer) ArticlesPage(articles []store.Article) (string, error) {
	return r.renderPage("articles.html", pageData{
		Title:    "Articles – " + r.cfg.Site.Name,
		Desc:     "All long-form articles published on " + r.cfg.Site.Name + ".",
		TopStrip: "All articles • " + r.cfg.Site.Name,
		Nav:      "articles",
		Articles: store.SortedByDate(articles),
	})
}

// CategoryPage renders one configured category: articles whose tags
// contain the category tag exactly, newest first.
func (r *Renderer) CategoryPage(cat config.Category, articles []store.Article) (string, error) {
	var filtered []store.Article
	for _, a := range articles {
		for _, t := range a.Tags {
			if t == cat.Tag {
				filtered = append(filtered, a)
				break
			}
		}
	}
	return r.renderPage("category.html", pageData{
		Title:    cat.Title + " – " + r.cfg.Site.Name,
		Desc:     cat.Desc,
		Nav:      "home",
		Articles: store.SortedByDate(filtered),
		Category: cat,
	})
}

// SearchPage renders the static search shell with its client-side
// filter script. Results are filtered and escaped in the browser
// against search-index.json; no network round-trip per keystroke.
func (r *Renderer) SearchPage() (string, error) {
	return r.renderPage("search.html", pageData{
		Title:    "Search – " + r.cfg.Site.Name,
		Desc:     "Search articles on " + r.cfg.Site.Name + ".",
		TopStrip: "Search • " + r.cfg.Site.Name,
		Nav:      "search",
	})
}

// NotFoundPage renders the static 404 shell.
func (r *Renderer) NotFoundPage() (string, error) {
	return r.renderPage("notfound.html", pageData{
		Title:    "404 – Page Not Found | " + r.cfg.Site.Name,
		TopStrip: "404 • Not Found",
		NoIndex:  true,
	})
}

// UpdateHomepage replaces the marker-delimited region of the homepage
// with the fragment. A missing file or a missing marker pair is a
// silent no-op, never an error.
func UpdateHomepage(path, fragment string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading homepage: %w", err)
	}

	html := string(data)
	start := strings.Index(html, MarkerStart)
	if start < 0 {
		return nil
	}
	rest := html[start+len(MarkerStart):]
	end := strings.Index(rest, MarkerEnd)
	if end < 0 {
		return nil
	}

	updated := html[:start] + MarkerStart + "\n" + fragment + "\n" + MarkerEnd + rest[end+len(MarkerEnd):]
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("writing homepage: %w", err)
	}
	return nil
}
