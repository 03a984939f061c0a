package index

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"jrlgen/internal/domain"
	"jrlgen/internal/eventbus"
)

// BuildOptions selects which files end up in a generated index
type BuildOptions struct {
	Match   string // substring a relative path must contain, e.g. ".cb"
	Exclude string // substring that drops a path, e.g. "BROKEN"
}

// DefaultBuildOptions keeps comic book archives and skips broken ones
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		Match:   ".cb",
		Exclude: "BROKEN",
	}
}

// Builder generates index files from a directory tree
type Builder struct {
	bus    eventbus.EventBus
	logger *slog.Logger
}

// NewBuilder creates a new index builder
func NewBuilder(bus eventbus.EventBus, logger *slog.Logger) *Builder {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{bus: bus, logger: logger}
}

// Collect walks dir and returns the sorted, slash-separated paths of the
// matching files relative to dir
func (b *Builder) Collect(ctx context.Context, dir string, opts BuildOptions) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			if path == dir {
				return err
			}
			b.logger.Warn("skipping unreadable path",
				slog.String("path", path),
				slog.String("error", err.Error()))
			return nil
		}

		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if opts.Match != "" && !strings.Contains(rel, opts.Match) {
			return nil
		}
		if opts.Exclude != "" && strings.Contains(rel, opts.Exclude) {
			return nil
		}

		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// Build writes the index for dir to w, one path per line, each line
// terminated by a newline. It returns the number of paths written.
func (b *Builder) Build(ctx context.Context, dir string, opts BuildOptions, w io.Writer) (int, error) {
	paths, err := b.Collect(ctx, dir, opts)
	if err != nil {
		return 0, err
	}

	bw := bufio.NewWriter(w)
	for _, p := range paths {
		if _, err := bw.WriteString(p + "\n"); err != nil {
			return 0, fmt.Errorf("failed to write index: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("failed to write index: %w", err)
	}

	b.logger.Info("index built", slog.String("dir", dir), slog.Int("paths", len(paths)))
	b.bus.Publish(domain.IndexBuiltEvent{Dir: dir, Count: len(paths)})

	return len(paths), nil
}
