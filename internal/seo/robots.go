package seo

import "github.com/insight-chronicles/chronicler/internal/config"

// Robots renders robots.txt: allow everything, point at the sitemap.
func Robots(cfg *config.Config) []byte {
	return []byte("User-agent: *\nAllow: /\n\nSitemap: " + cfg.Site.URL + "/sitemap.xml\n")
}
