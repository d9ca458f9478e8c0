package main

import (
	"errors"
	"io/fs"

	"github.com/matsen/dendro/internal/config"
	"github.com/matsen/dendro/internal/dendro"
	"github.com/matsen/dendro/internal/storage"
)

// mustLoadConfig resolves the --config file or the global config, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustReadDocument reads the input document, exits on error.
func mustReadDocument(path string) *storage.Document {
	doc, err := storage.ReadDocument(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			exitWithError(ExitError, "%v", err)
		}
		exitWithError(ExitDataError, "%v", err)
	}
	return doc
}

// newBuilder creates a builder for doc configured from cfg. Precomputed
// geometry in the document is installed right away.
func newBuilder(cfg *config.Config, doc *storage.Document) (*dendro.Builder, error) {
	b := dendro.NewBuilder(doc.Info(),
		dendro.WithColorTable(cfg.ColorTable()),
		dendro.WithStyle(cfg.DendroStyle()),
		dendro.WithSnapDigits(cfg.SnapDigits),
		dendro.WithLogger(logger),
		dendro.WithRecorder(recorder),
	)
	if doc.Dendrogram != nil {
		if err := b.SetGeometry(doc.Dendrogram); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// buildDendrogram lays out geometry when the document has none and
// assembles the dendrogram.
func buildDendrogram(cfg *config.Config, doc *storage.Document, opts dendro.GenerateOptions) (*dendro.Dendrogram, error) {
	b, err := newBuilder(cfg, doc)
	if err != nil {
		return nil, err
	}
	layout := cfg.LayoutOptions()
	if layout.LeafLabel, err = doc.LeafLabel(); err != nil {
		return nil, err
	}
	return b.Create(layout, opts)
}
