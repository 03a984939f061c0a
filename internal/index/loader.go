package index

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"
)

// DefaultRoot is prepended to every relative path read from the index
const DefaultRoot = "/data/"

// DefaultFile is the index file name inside the root
const DefaultFile = "all-files.txt"

var lineBreak = regexp.MustCompile(`\r?\n`)

// LoadError reports that the index could not be read
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load index %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Parse turns raw index text into the sorted list of rooted paths.
// The text is expected to end with a single line terminator; the segment
// after the last terminator is always dropped.
func Parse(raw, root string) []string {
	lines := lineBreak.Split(raw, -1)
	lines = lines[:len(lines)-1]

	sort.Strings(lines)

	paths := make([]string, len(lines))
	for i, line := range lines {
		paths[i] = root + line
	}
	return paths
}

// Loader reads the index from a local file or an http(s) URL
type Loader struct {
	Source string
	Root   string
	Client *http.Client
	Logger *slog.Logger
}

// NewLoader creates a loader for source with paths rooted at root
func NewLoader(source, root string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		Source: source,
		Root:   root,
		Client: &http.Client{Timeout: 30 * time.Second},
		Logger: logger,
	}
}

// Load fetches and parses the index. Any failure is returned as *LoadError.
func (l *Loader) Load(ctx context.Context) ([]string, error) {
	start := time.Now()

	raw, err := l.read(ctx)
	if err != nil {
		l.Logger.Error("index load failed",
			slog.String("source", l.Source),
			slog.String("error", err.Error()))
		return nil, &LoadError{Source: l.Source, Err: err}
	}

	paths := Parse(raw, l.Root)
	l.Logger.Info("index loaded",
		slog.String("source", l.Source),
		slog.Int("paths", len(paths)),
		slog.Duration("took", time.Since(start)))
	return paths, nil
}

func (l *Loader) read(ctx context.Context) (string, error) {
	if isRemote(l.Source) {
		return l.fetch(ctx)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(l.Source)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (l *Loader) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.Source, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(data), nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
