// Package draft loads per-article JSON draft files from the drafts
// directory. Drafts are consumed once by the publisher and are neither
// deleted nor marked after publication.
package draft

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
)

var md = goldmark.New()

// Draft is one unpublished article awaiting merge into the index.
type Draft struct {
	Title     string   `json:"title"`
	Desc      string   `json:"desc"`
	Slug      string   `json:"slug"`
	Date      string   `json:"date"`
	Thumb     string   `json:"thumb"`
	ThumbOG   string   `json:"thumb_og,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Content   string   `json:"content"`
	ContentMD string   `json:"content_md,omitempty"`
}

// ReadAll loads every .json draft in dir, non-recursively, in
// filesystem-listing order. A missing directory is an empty batch; a
// malformed draft fails the whole run.
func ReadAll(dir string) ([]Draft, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading drafts directory: %w", err)
	}

	var drafts []Draft
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading draft %s: %w", entry.Name(), err)
		}
		var d Draft
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parsing draft %s: %w", entry.Name(), err)
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

// Body resolves the draft's HTML body. Inline HTML content wins; a
// markdown-only draft is rendered with goldmark.
func (d *Draft) Body() (string, error) {
	if d.Content != "" || d.ContentMD == "" {
		return d.Content, nil
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(d.ContentMD), &buf); err != nil {
		return "", fmt.Errorf("rendering draft markdown %s: %w", d.Slug, err)
	}
	return buf.String(), nil
}

// EffectiveThumbOG is the OpenGraph thumbnail, defaulting to the card
// thumbnail when absent.
func (d *Draft) EffectiveThumbOG() string {
	if d.ThumbOG != "" {
		return d.ThumbOG
	}
	return d.Thumb
}
