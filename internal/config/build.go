package config

import (
	"fmt"
	"log/slog"

	"github.com/quorumlabs/rollcall/internal/extract"
)

// SlogLevel maps the configured log level to its [slog.Level].
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// BuildSources constructs the enabled candidate sources in their fixed
// pipeline order.
func (c *Config) BuildSources() []extract.Source {
	var sources []extract.Source
	width := c.Pipeline.ContextWidth

	if c.Sources.Capitalized.Enabled {
		sources = append(sources, extract.NewCapitalizedSource(
			extract.WithConnectors(c.Sources.Capitalized.Connectors),
			extract.WithCapitalizedContextWidth(width),
		))
	}
	if c.Sources.Titled.Enabled {
		titles := make([]extract.TitleEntry, len(c.Sources.Titled.Titles))
		for i, t := range c.Sources.Titled.Titles {
			role := extract.Role(t.Role)
			if t.Role == "" {
				role = extract.RoleUnknown
			}
			titles[i] = extract.TitleEntry{Token: t.Token, Role: role}
		}
		sources = append(sources, extract.NewTitledSource(titles,
			extract.WithMaxNameTokens(c.Sources.Titled.MaxNameTokens),
			extract.WithTitledContextWidth(width),
		))
	}
	if c.Sources.Introductions.Enabled {
		sources = append(sources, extract.NewIntroductionSource(
			extract.WithIntroductionContextWidth(width),
		))
	}
	return sources
}

// BuildFilter constructs the candidate filter, loading any configured
// stop-phrase files.
func (c *Config) BuildFilter() (*extract.Filter, error) {
	phrases := c.Filter.StopPhrases
	for _, path := range c.Filter.StopPhraseFiles {
		extra, err := LoadWordList(path)
		if err != nil {
			return nil, fmt.Errorf("config: filter.stop_phrase_files: %w", err)
		}
		phrases = append(phrases, extra...)
	}

	return extract.NewFilter(
		extract.WithStopPhrases(phrases),
		extract.WithRejectAnyToken(c.Filter.RejectAnyToken),
		extract.WithLengthBounds(c.Filter.MinLength, c.Filter.MaxLength),
		extract.WithBoundaryStopWords(c.Filter.StartStopWords, c.Filter.EndStopWords),
		extract.WithEmbeddedTitleWords(c.Filter.EmbeddedTitleWords),
	), nil
}

// BuildNormalizer constructs the canonical-form normalizer.
func (c *Config) BuildNormalizer() *extract.Normalizer {
	return extract.NewNormalizer(
		extract.WithStripTitles(c.Normalize.StripTitles),
		extract.WithSubstitutions(c.Normalize.Substitutions),
	)
}

// BuildClassifier constructs the confidence-tier classifier.
func (c *Config) BuildClassifier() *extract.Classifier {
	return extract.NewClassifier(c.Thresholds.Medium, c.Thresholds.High,
		extract.WithMinimumToKeep(c.Thresholds.MinimumToKeep),
		extract.WithDocumentCountCap(c.Thresholds.UseDocumentCount),
	)
}

// BuildClusterer constructs the fuzzy deduplicator.
func (c *Config) BuildClusterer() *extract.Clusterer {
	return extract.NewClusterer(
		extract.WithSimilarityThreshold(c.Clustering.Similarity),
		extract.WithIndependenceThreshold(c.Clustering.Independence),
		extract.WithReviewMargin(c.Clustering.ReviewMargin),
	)
}

// BuildPipeline assembles the full extraction pipeline from the
// configuration.
func (c *Config) BuildPipeline(opts ...extract.PipelineOption) (*extract.Pipeline, error) {
	filter, err := c.BuildFilter()
	if err != nil {
		return nil, err
	}
	base := []extract.PipelineOption{extract.WithWorkers(c.Pipeline.Workers)}
	return extract.NewPipeline(
		c.BuildSources(),
		filter,
		c.BuildNormalizer(),
		c.BuildClassifier(),
		c.BuildClusterer(),
		append(base, opts...)...,
	)
}
