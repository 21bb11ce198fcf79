package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"tourly/pkg/config"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ExportSite renders the published site as static files below dir and copies
// the assets from staticDir to dir/static. It returns the written paths
// relative to dir, sorted.
func ExportSite(ctx context.Context, pages *Pages, dir, staticDir string) ([]string, error) {
	tours, err := ListTours(ctx, VersionPublished)
	if err != nil {
		return nil, fmt.Errorf("list tours: %w", err)
	}

	var (
		mu      sync.Mutex
		written []string
	)
	record := func(rel string) {
		mu.Lock()
		written = append(written, filepath.ToSlash(rel))
		mu.Unlock()
	}

	writePage := func(rel, name string, data PageData) error {
		var buf bytes.Buffer
		if err := pages.Render(&buf, name, data); err != nil {
			return fmt.Errorf("render %s: %w", rel, err)
		}
		if err := writeFile(dir, rel, &buf); err != nil {
			return err
		}
		record(rel)
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(config.CacheConcurrency, 1))

	g.Go(func() error { return writePage("index.html", "home.html", HomePage(Site, tours, false)) })
	g.Go(func() error { return writePage("tours/index.html", "tours.html", ToursIndexPage(Site, tours, false)) })
	g.Go(func() error { return writePage("404.html", "404.html", NotFoundPage(Site)) })

	for i := range tours {
		story := &tours[i]
		slug, ok := TourSlug(*story)
		if !ok {
			zap.L().Warn("Skipping tour with unusable slug", zap.String("full_slug", story.FullSlug))
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return writePage(filepath.Join("tours", slug, "index.html"), "tour.html", pages.TourPage(Site, story, false))
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	assets, err := copyStatic(staticDir, filepath.Join(dir, "static"))
	if err != nil {
		return nil, fmt.Errorf("copy static: %w", err)
	}
	for _, rel := range assets {
		record(filepath.Join("static", rel))
	}

	sort.Strings(written)
	zap.L().Info("Site exported", zap.String("dir", dir), zap.Int("files", len(written)))
	return written, nil
}

func writeFile(root, rel string, r *bytes.Buffer) error {
	path := SafeJoin(root, "", rel)
	if path == "" {
		return fmt.Errorf("invalid export path: %s", rel)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return atomic.WriteFile(path, r)
}

func copyStatic(src, dst string) ([]string, error) {
	if src == "" {
		return nil, nil
	}
	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var copied []string
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := writeFile(dst, rel, bytes.NewBuffer(content)); err != nil {
			return err
		}
		copied = append(copied, rel)
		return nil
	})
	return copied, err
}
