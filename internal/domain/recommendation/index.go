package recommendation

import (
	"fmt"

	"giftguru-backend/internal/domain/catalog"
	"giftguru-backend/internal/domain/services"
)

// CorpusMode selects which item fields are embedded.
type CorpusMode string

const (
	// CorpusCombined embeds category, tags and description.
	CorpusCombined CorpusMode = "combined"
	// CorpusTags embeds the tags column alone.
	CorpusTags CorpusMode = "tags"
)

// IndexConfig configures BuildIndex.
type IndexConfig struct {
	Corpus     CorpusMode
	Vectorizer services.VectorizerConfig
}

// DefaultIndexConfig embeds the combined text with unigrams and bigrams.
func DefaultIndexConfig() IndexConfig {
	return IndexConfig{
		Corpus:     CorpusCombined,
		Vectorizer: services.DefaultVectorizerConfig(),
	}
}

// CatalogIndex pairs a catalog with the vectorizer fitted on it and the
// precomputed item vectors. It is immutable; reloading the catalog means
// building a new index and replacing the old one as a whole, never mixing
// vectors from two vocabularies.
type CatalogIndex struct {
	catalog    *catalog.Catalog
	vectorizer *services.TFIDFVectorizer
	candidates []Candidate
	vectors    []services.Vector
	corpus     CorpusMode
}

// BuildIndex fits the vectorizer on the catalog and embeds every item.
func BuildIndex(cat *catalog.Catalog, cfg IndexConfig) (*CatalogIndex, error) {
	if cat == nil {
		cat = catalog.New(nil)
	}
	if cfg.Corpus == "" {
		cfg.Corpus = CorpusCombined
	}
	if cfg.Corpus != CorpusCombined && cfg.Corpus != CorpusTags {
		return nil, fmt.Errorf("unknown corpus mode %q", cfg.Corpus)
	}

	items := cat.Items()
	corpus := make([]string, len(items))
	candidates := make([]Candidate, len(items))
	for i, item := range items {
		corpus[i] = corpusText(item, cfg.Corpus)
		candidates[i] = CandidateFromItem(item)
	}

	fitted, err := services.NewTFIDFVectorizer(cfg.Vectorizer, nil).Fit(corpus)
	if err != nil {
		return nil, fmt.Errorf("fit vectorizer: %w", err)
	}

	vectors, err := fitted.EmbedAll(corpus)
	if err != nil {
		return nil, fmt.Errorf("embed catalog: %w", err)
	}

	return &CatalogIndex{
		catalog:    cat,
		vectorizer: fitted,
		candidates: candidates,
		vectors:    vectors,
		corpus:     cfg.Corpus,
	}, nil
}

func corpusText(item catalog.Item, mode CorpusMode) string {
	if mode == CorpusTags {
		return item.Tags
	}
	return item.CombinedText()
}

// Catalog returns the indexed catalog.
func (idx *CatalogIndex) Catalog() *catalog.Catalog { return idx.catalog }

// Vectorizer returns the fitted vectorizer.
func (idx *CatalogIndex) Vectorizer() *services.TFIDFVectorizer { return idx.vectorizer }

// Corpus returns the corpus mode the index was built with.
func (idx *CatalogIndex) Corpus() CorpusMode { return idx.corpus }

// Len returns the number of indexed items.
func (idx *CatalogIndex) Len() int { return len(idx.candidates) }

// Dimension returns the vocabulary size shared by all vectors of this index.
func (idx *CatalogIndex) Dimension() int { return idx.vectorizer.Dimension() }
