package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"ERROR", SeverityHigh},
		{"WARNING", SeverityMedium},
		{"INFO", SeverityLow},
		{"CRITICAL", SeverityCritical},
		{"HIGH", SeverityHigh},
		{"MEDIUM", SeverityMedium},
		{"LOW", SeverityLow},
		{"UNKNOWN", SeverityUnknown},
		{"critical", SeverityCritical},
		{" warning ", SeverityMedium},
		{"moderate", SeverityUnknown},
		{"", SeverityUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := NormalizeSeverity(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
			assert.Equal(t, got, NormalizeSeverity(string(got)), "normalization must be idempotent")
		})
	}
}

func TestSeverityWeight(t *testing.T) {
	assert.Equal(t, 4, SeverityCritical.Weight())
	assert.Equal(t, 3, SeverityHigh.Weight())
	assert.Equal(t, 2, SeverityMedium.Weight())
	assert.Equal(t, 1, SeverityLow.Weight())
	assert.Equal(t, 0, SeverityUnknown.Weight())
	assert.Equal(t, 0, Severity("bogus").Weight())
}

func TestSeverityLabel(t *testing.T) {
	assert.Equal(t, "Critical", SeverityCritical.Label())
	assert.Equal(t, "Unknown", SeverityUnknown.Label())
}

func TestSortBySeverity(t *testing.T) {
	findings := []Finding{
		{ID: "b", Severity: SeverityLow},
		{ID: "c", Severity: SeverityCritical},
		{ID: "a", Severity: SeverityLow},
		{ID: "d", Severity: SeverityHigh},
	}
	SortBySeverity(findings)

	var ids []string
	for _, f := range findings {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{"c", "d", "a", "b"}, ids)
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("sca-image")
	assert.True(t, ok)
	assert.Equal(t, CategoryImage, c)
	assert.Equal(t, KindDependency, c.Kind())
	assert.Equal(t, KindStatic, CategoryStatic.Kind())

	_, ok = ParseCategory("dast")
	assert.False(t, ok)
}
