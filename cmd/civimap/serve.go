package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/karaleary/civimap/internal/config"
	"github.com/karaleary/civimap/internal/dictionary"
	"github.com/karaleary/civimap/internal/embedding"
	"github.com/karaleary/civimap/internal/engine"
	"github.com/karaleary/civimap/internal/matcher"
	"github.com/karaleary/civimap/internal/semantic"
	"github.com/karaleary/civimap/internal/server"
	"github.com/karaleary/civimap/internal/session"
)

var (
	serveListen string
	serveWatch  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the mapping engine over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload the dictionary when its file changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirs(); err != nil {
		return err
	}

	dict, err := loadDictionary(cfg.Dictionary)
	if err != nil {
		return err
	}
	eng := engine.New(dict)

	logger := log.New(os.Stderr, "civimap: ", log.LstdFlags)

	store, err := session.Open(cfg.Session.DB)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer store.Close()

	opts := server.Options{
		Engine: eng,
		Store:  store,
		Logger: logger,
	}

	if key := cfg.APIKey(); key != "" {
		match, closeIndex, err := buildSemanticMatcher(cfg, key, dict)
		if err != nil {
			logger.Printf("semantic matching disabled: %v", err)
		} else {
			defer closeIndex()
			opts.Semantic = match
			logger.Printf("semantic matching enabled (model %s)", cfg.Embedding.Model)
		}
	}

	srv := server.New(opts)

	if serveWatch || cfg.HotReload {
		if cfg.Dictionary == "" {
			logger.Printf("hot reload requested but no dictionary file configured; skipping")
		} else {
			go func() {
				if err := srv.Watch(cfg.Dictionary); err != nil {
					logger.Printf("dictionary watch stopped: %v", err)
				}
			}()
		}
	}

	listen := serveListen
	if listen == "" {
		listen = cfg.Listen
	}
	return srv.ListenAndServe(listen)
}

func buildSemanticMatcher(cfg *config.Config, apiKey string, dict *dictionary.Dictionary) (engine.MatchFunc, func() error, error) {
	client := embedding.NewClient(apiKey, embedding.Options{
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
	})

	index, err := semantic.Open(cfg.Embedding.Index, cfg.Embedding.Dimensions)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := index.IndexDictionary(ctx, dict, client); err != nil {
		index.Close()
		return nil, nil, err
	}

	match := func(normalized string) ([]matcher.Candidate, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return index.Match(ctx, client, normalized, 5)
	}
	return match, index.Close, nil
}
