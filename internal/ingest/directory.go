// Package ingest discovers document files on disk.
package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/fuel-docs/constants"
	"github.com/joseph-ayodele/fuel-docs/internal/core"
)

// DirStats summarizes a directory scan.
type DirStats struct {
	Scanned uint32
	Matched uint32
	Skipped uint32
}

// Options filter a scan. An empty Exts accepts every extension the processor can read.
type Options struct {
	Exts       []string
	SkipHidden bool
}

// ScanDirectory walks root and returns one document of the given kind per readable file,
// in lexical path order. Unreadable entries are counted as skipped and the walk goes on.
func ScanDirectory(root string, kind constants.DocumentKind, opts Options) ([]core.Document, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	exts := map[string]struct{}{}
	for _, e := range opts.Exts {
		if e = constants.NormalizeExt(strings.TrimSpace(e)); e != "" {
			exts[e] = struct{}{}
		}
	}

	var docs []core.Document
	var stats DirStats
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			stats.Skipped++
			return nil
		}
		if opts.SkipHidden && path != root && isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := constants.NormalizeExt(filepath.Ext(path))
		if constants.MapExtToFormat(ext) == "" {
			return nil
		}
		if _, ok := exts[ext]; len(exts) > 0 && !ok {
			return nil
		}
		stats.Matched++
		docs = append(docs, core.Document{Kind: kind, Path: path})
		return nil
	})
	if err != nil {
		return docs, stats, fmt.Errorf("walk: %w", err)
	}
	return docs, stats, nil
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
