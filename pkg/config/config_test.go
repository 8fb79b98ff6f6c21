package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northcutted/scanboard/pkg/dismissal"
	"github.com/northcutted/scanboard/pkg/loader"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
sources:
  semgrep: reports/semgrep.json
  trivy_image: https://ci.example.com/trivy-image.json
page_size: 25
depth: 3
format: markdown
no_color: true
`))
	require.NoError(t, err)

	assert.Equal(t, "reports/semgrep.json", cfg.Sources.Semgrep)
	assert.Equal(t, loader.DefaultTrivyFS, cfg.Sources.TrivyFS, "unset sources keep their default")
	assert.Equal(t, "https://ci.example.com/trivy-image.json", cfg.Sources.TrivyImage)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, 3, cfg.Depth)
	assert.Equal(t, "markdown", cfg.Format)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, dismissal.DefaultPath, cfg.Dismissals)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "sources: [unterminated"},
		{"zero page size", "page_size: 0"},
		{"negative depth", "depth: -1"},
		{"unknown format", "format: pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadOptional(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadOptional(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(dir, DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("dismissals: state.json\n"), 0o644))
	cfg, err = LoadOptional(path)
	require.NoError(t, err)
	assert.Equal(t, "state.json", cfg.Dismissals)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
