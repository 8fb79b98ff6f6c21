// Package loader fetches the three scanner reports and turns them into findings.
package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/northcutted/scanboard/pkg/extract"
	"github.com/northcutted/scanboard/pkg/types"
)

// Default report locations, relative to the working directory.
const (
	DefaultSemgrep    = "data/semgrep-report.json"
	DefaultTrivyFS    = "data/trivy-fs-report.json"
	DefaultTrivyImage = "data/trivy-image-report.json"
)

// TimeoutFetch bounds a single source read.
var TimeoutFetch = 30 * time.Second

// maxReportBytes caps how much of a remote report is read.
const maxReportBytes = 256 << 20

// Shapes substituted for a source that cannot be read.
var (
	emptySemgrep = []byte(`{"results":[]}`)
	emptyTrivy   = []byte(`{"Results":[]}`)
)

// Sources names where each report lives. A value is a file path or an
// http(s) URL. An empty value uses the default path.
type Sources struct {
	Semgrep    string `yaml:"semgrep"`
	TrivyFS    string `yaml:"trivy_fs"`
	TrivyImage string `yaml:"trivy_image"`
}

// DefaultSources returns the conventional report paths.
func DefaultSources() Sources {
	return Sources{
		Semgrep:    DefaultSemgrep,
		TrivyFS:    DefaultTrivyFS,
		TrivyImage: DefaultTrivyImage,
	}
}

// WithDefaults fills empty locations from DefaultSources.
func (s Sources) WithDefaults() Sources {
	d := DefaultSources()
	if s.Semgrep == "" {
		s.Semgrep = d.Semgrep
	}
	if s.TrivyFS == "" {
		s.TrivyFS = d.TrivyFS
	}
	if s.TrivyImage == "" {
		s.TrivyImage = d.TrivyImage
	}
	return s
}

// Location returns the configured location of a category.
func (s Sources) Location(c types.Category) string {
	switch c {
	case types.CategoryStatic:
		return s.Semgrep
	case types.CategoryFS:
		return s.TrivyFS
	case types.CategoryImage:
		return s.TrivyImage
	}
	return ""
}

// Result is the outcome of a load. Warnings holds one entry per source that
// fell back to an empty report; it is nil when every source was read.
type Result struct {
	Findings map[types.Category][]types.Finding
	Warnings error
}

// Total is the number of findings across categories.
func (r *Result) Total() int {
	n := 0
	for _, fs := range r.Findings {
		n += len(fs)
	}
	return n
}

// Loader reads sources. The zero value uses http.DefaultClient and the
// operating system filesystem.
type Loader struct {
	Client *http.Client
	Fs     afero.Fs
}

// Load reads every source concurrently with a default Loader.
func Load(ctx context.Context, src Sources) *Result {
	return (&Loader{}).Load(ctx, src)
}

// Load reads every source concurrently. A source that cannot be read is
// logged, recorded in Result.Warnings, and treated as an empty report, so
// Load itself never fails.
func (l *Loader) Load(ctx context.Context, src Sources) *Result {
	src = src.WithDefaults()
	res := &Result{Findings: make(map[types.Category][]types.Finding, len(types.Categories))}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for _, c := range types.Categories {
		c := c
		g.Go(func() error {
			location := src.Location(c)
			data, err := l.fetch(gctx, location)
			if err != nil {
				slog.Warn("source unavailable, using empty report", "category", c, "source", location, "error", err)
				data = emptyShape(c)
			}

			var findings []types.Finding
			if c == types.CategoryStatic {
				findings = extract.Semgrep(data)
			} else {
				findings = extract.Trivy(data, c)
			}
			slog.Debug("loaded source", "category", c, "source", location, "findings", len(findings))

			mu.Lock()
			defer mu.Unlock()
			res.Findings[c] = findings
			if err != nil {
				res.Warnings = multierror.Append(res.Warnings, fmt.Errorf("%s: %w", c, err))
			}
			return nil
		})
	}

	// Workers only ever return nil.
	_ = g.Wait()
	return res
}

func (l *Loader) fetch(ctx context.Context, location string) ([]byte, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, TimeoutFetch)
	defer cancel()

	if IsURL(location) {
		return l.fetchURL(fetchCtx, location)
	}
	return l.readFile(fetchCtx, location)
}

func (l *Loader) fetchURL(ctx context.Context, url string) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReportBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	return data, nil
}

func (l *Loader) readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fs := l.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// IsURL reports whether a source location is fetched over http(s).
func IsURL(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func emptyShape(c types.Category) []byte {
	if c == types.CategoryStatic {
		return emptySemgrep
	}
	return emptyTrivy
}
