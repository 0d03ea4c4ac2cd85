package dictionary

import (
	"context"
	"fmt"

	"anagram-quiz-service/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Spec describes one configured language.
type Spec struct {
	Language  domain.Language
	Label     string
	Normalize Normalizer
}

// Catalog holds every loaded dictionary. It is built once at startup and only read afterwards.
type Catalog struct {
	order  []domain.Language
	dicts  map[domain.Language]*Dictionary
	labels map[domain.Language]string
}

func NewCatalog() *Catalog {
	return &Catalog{
		dicts:  make(map[domain.Language]*Dictionary),
		labels: make(map[domain.Language]string),
	}
}

// Add registers dict under lang. Re-adding a language replaces the dictionary but keeps its position.
func (c *Catalog) Add(lang domain.Language, label string, dict *Dictionary) {
	if _, ok := c.dicts[lang]; !ok {
		c.order = append(c.order, lang)
	}
	if label == "" {
		label = string(lang)
	}
	c.dicts[lang] = dict
	c.labels[lang] = label
}

// Get returns the dictionary for lang.
func (c *Catalog) Get(lang domain.Language) (*Dictionary, bool) {
	d, ok := c.dicts[lang]
	return d, ok
}

// Label is the human name used in problem statements, e.g. "English word".
func (c *Catalog) Label(lang domain.Language) string {
	if l, ok := c.labels[lang]; ok {
		return l
	}
	return string(lang)
}

// Languages lists languages in registration order.
func (c *Catalog) Languages() []domain.Language {
	return append([]domain.Language(nil), c.order...)
}

// Has reports whether lang is loaded.
func (c *Catalog) Has(lang domain.Language) bool {
	_, ok := c.dicts[lang]
	return ok
}

// LoadCatalog loads every spec through loader concurrently. Any failure aborts the whole load.
func LoadCatalog(ctx context.Context, loader Loader, specs []Spec, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	built := make([]*Dictionary, len(specs))

	g, gctx := errgroup.WithContext(ctx)
	for i, spec := range specs {
		g.Go(func() error {
			raw, err := loader.LoadDictionary(gctx, spec.Language)
			if err != nil {
				return fmt.Errorf("load %s: %w", spec.Language, err)
			}
			dict, err := Build(raw.Questions, raw.Full, spec.Normalize)
			if err != nil {
				return fmt.Errorf("build %s: %w", spec.Language, err)
			}
			fullLen, _ := dict.FullLen()
			built[i] = dict
			logger.Info("dictionary loaded",
				zap.String("language", string(spec.Language)),
				zap.Int("questions", dict.Len()),
				zap.Int("full", fullLen),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	catalog := NewCatalog()
	for i, spec := range specs {
		catalog.Add(spec.Language, spec.Label, built[i])
	}
	return catalog, nil
}
