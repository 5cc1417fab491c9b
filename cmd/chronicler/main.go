package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/insight-chronicles/chronicler/internal/config"
	"github.com/insight-chronicles/chronicler/internal/draft"
	"github.com/insight-chronicles/chronicler/internal/fetch"
	"github.com/insight-chronicles/chronicler/internal/pipeline"
	"github.com/insight-chronicles/chronicler/internal/publish"
	"github.com/insight-chronicles/chronicler/internal/scaffold"
	"github.com/insight-chronicles/chronicler/internal/store"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "chronicler",
	Short:   "Static blog site generator",
	Long:    "Chronicler publishes article drafts and regenerates the site's pages, feeds, and search index in one pass.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("chronicler", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Scaffold a new site (config, article template, homepage)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		written, err := scaffold.WriteAll(dir)
		if err != nil {
			return err
		}
		if len(written) == 0 {
			fmt.Println("Nothing to do: all scaffold files already exist.")
			return nil
		}
		for _, name := range written {
			fmt.Printf("Created %s\n", name)
		}
		fmt.Println("Edit chronicler.yaml to configure site name, URL, and categories.")
		return nil
	},
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Publish drafts and regenerate the whole site",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, err := pipeline.New(cfg)
		if err != nil {
			return err
		}

		result, err := pipe.Run()
		for i, step := range result.Steps {
			fmt.Printf("Step %d/%d: %s — %s\n", i+1, len(result.Steps), step.Name, step.Summary)
		}
		if err != nil {
			return err
		}

		fmt.Printf("\nSite generated: %d article(s) total, %d newly published.\n", result.Articles, result.Published)
		return nil
	},
}

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish drafts into the article index without regenerating pages",
	RunE: func(cmd *cobra.Command, args []string) error {
		articles, err := store.Load(cfg.StorePath())
		if err != nil {
			return err
		}
		drafts, err := draft.ReadAll(cfg.DraftsPath())
		if err != nil {
			return err
		}

		articles, result, err := publish.New(cfg).Publish(articles, drafts)
		if err != nil {
			return err
		}
		if err := store.Save(cfg.StorePath(), articles); err != nil {
			return err
		}

		fmt.Println("Publish complete:")
		fmt.Printf("  New articles: %d\n", result.Published)
		fmt.Printf("  Duplicates skipped: %d\n", result.Skipped)
		fmt.Printf("  Total in index: %d\n", len(articles))
		fmt.Println("\nRun 'chronicler build' to regenerate pages and feeds.")
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [url]",
	Short: "Fetch a web page and turn it into a draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fetcher := fetch.New(cfg, 15*time.Second)
		path, err := fetcher.Import(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Draft written: %s\n", path)
		fmt.Println("Review it, then run 'chronicler build' to publish.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show article index status",
	RunE: func(cmd *cobra.Command, args []string) error {
		articles, err := store.Load(cfg.StorePath())
		if err != nil {
			return err
		}
		drafts, err := draft.ReadAll(cfg.DraftsPath())
		if err != nil {
			return err
		}

		pending := 0
		for _, d := range drafts {
			if !store.HasSlug(articles, d.Slug) {
				pending++
			}
		}

		fmt.Printf("Site: %s (%s)\n\n", cfg.Site.Name, cfg.Site.URL)
		fmt.Println("Articles:")
		fmt.Printf("  Published: %d\n", len(articles))
		if sorted := store.SortedByDate(articles); len(sorted) > 0 {
			fmt.Printf("  Newest: %s (%s)\n", sorted[0].Title, sorted[0].Date)
		}
		fmt.Println("\nDrafts:")
		fmt.Printf("  In directory: %d\n", len(drafts))
		fmt.Printf("  Pending publish: %d\n", pending)

		fmt.Println("\nCategories:")
		for _, cat := range cfg.Categories {
			count := 0
			for _, a := range articles {
				for _, t := range a.Tags {
					if t == cat.Tag {
						count++
						break
					}
				}
			}
			fmt.Printf("  %s: %d\n", cat.Tag, count)
		}
		return nil
	},
}
