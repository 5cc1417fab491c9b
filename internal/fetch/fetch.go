// Package fetch turns a web page into a draft: it downloads the page,
// runs readability extraction, and writes a draft JSON file into the
// drafts directory for review before publishing.
package fetch

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/insight-chronicles/chronicler/internal/config"
	"github.com/insight-chronicles/chronicler/internal/draft"
)

// DraftFetcher fetches pages over HTTP and extracts readable articles.
type DraftFetcher struct {
	cfg    *config.Config
	client *http.Client
}

// New creates a new draft fetcher.
func New(cfg *config.Config, timeout time.Duration) *DraftFetcher {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &DraftFetcher{
		cfg: cfg,
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
	}
}

// Import fetches pageURL, extracts the readable article, and writes a
// draft JSON file into the drafts directory. It returns the path of
// the written draft.
func (f *DraftFetcher) Import(pageURL string) (string, error) {
	req, err := http.NewRequest("GET", pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", "chronicler/1.0 (static site generator)")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("fetching %s: %s", pageURL, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", pageURL, err)
	}

	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parsing url %s: %w", pageURL, err)
	}
	article, err := readability.FromReader(strings.NewReader(string(body)), parsedURL)
	if err != nil {
		return "", fmt.Errorf("extracting article from %s: %w", pageURL, err)
	}
	if article.Title == "" {
		return "", fmt.Errorf("no extractable article at %s", pageURL)
	}

	slug := Slugify(article.Title) + ".html"
	d := draft.Draft{
		Title:   article.Title,
		Desc:    strings.TrimSpace(article.Excerpt),
		Slug:    slug,
		Date:    time.Now().Format("2006-01-02"),
		Thumb:   article.Image,
		Content: article.Content,
	}

	if err := os.MkdirAll(f.cfg.DraftsPath(), 0o755); err != nil {
		return "", fmt.Errorf("creating drafts directory: %w", err)
	}

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding draft: %w", err)
	}
	out := filepath.Join(f.cfg.DraftsPath(), Slugify(article.Title)+".json")
	if err := os.WriteFile(out, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("writing draft: %w", err)
	}
	return out, nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases a title and reduces it to hyphen-separated
// alphanumeric runs.
func Slugify(title string) string {
	slug := nonSlug.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}
