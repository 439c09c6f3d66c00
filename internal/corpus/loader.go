// Package corpus loads transcript documents from disk for an extraction run.
package corpus

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/quorumlabs/rollcall/internal/extract"
)

// LoaderOption is a functional option for configuring a [Loader].
type LoaderOption func(*Loader)

// WithExtensions sets the file extensions treated as transcripts. Default:
// ".txt".
func WithExtensions(exts []string) LoaderOption {
	return func(l *Loader) {
		l.exts = make(map[string]struct{}, len(exts))
		for _, e := range exts {
			l.exts[strings.ToLower(e)] = struct{}{}
		}
	}
}

// WithLogger sets the logger for per-file diagnostics. Default:
// [slog.Default].
func WithLogger(log *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = log
	}
}

// Loader walks a corpus directory and returns its transcripts as documents.
// The walk order is lexical, so document order — and therefore document IDs —
// is stable across runs.
type Loader struct {
	exts   map[string]struct{}
	logger *slog.Logger
}

// NewLoader constructs a [Loader] with the supplied options.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		exts: map[string]struct{}{".txt": {}},
	}
	for _, o := range opts {
		o(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// Load reads every matching file under dir, recursively. The document ID is
// the path relative to dir. Unreadable files are logged and skipped; only a
// missing or unwalkable root directory is an error.
func (l *Loader) Load(dir string) ([]extract.Document, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("corpus: stat %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("corpus: %q is not a directory", dir)
	}

	var docs []extract.Document
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if d != nil && d.IsDir() {
				l.logger.Warn("corpus: skipping unreadable directory",
					slog.String("path", path), slog.Any("err", walkErr))
				return fs.SkipDir
			}
			l.logger.Warn("corpus: skipping unreadable entry",
				slog.String("path", path), slog.Any("err", walkErr))
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := l.exts[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			l.logger.Warn("corpus: skipping unreadable file",
				slog.String("path", path), slog.Any("err", readErr))
			return nil
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		docs = append(docs, extract.Document{
			ID:   filepath.ToSlash(rel),
			Text: string(data),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("corpus: walk %q: %w", dir, err)
	}

	l.logger.Info("corpus loaded",
		slog.String("dir", dir), slog.Int("documents", len(docs)))
	return docs, nil
}
