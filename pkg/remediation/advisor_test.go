package remediation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/northcutted/scanboard/pkg/types"
)

func TestForStatic(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		category string
		fix      string
		contains string
	}{
		{"explicit fix wins", "Possible XSS", "xss", "use escape()", "use escape()"},
		{"xss keyword", "Possible XSS in template", "", "", "Sanitize"},
		{"sql injection keyword", "Detected SQL Injection via concat", "", "", "parameterized"},
		{"hardcoded keyword", "Hardcoded password found", "", "", "secrets manager"},
		{"xss beats hardcoded", "hardcoded xss payload", "", "", "Sanitize"},
		{"generic fallback", "Weak random number generator", "", "", "Review the flagged code"},
		{"generic with category", "Weak cipher", "cryptography", "", "cryptography"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForStatic(tt.message, tt.category, tt.fix)
			assert.NotEmpty(t, got)
			assert.Contains(t, got, tt.contains)
		})
	}
}

func TestForStatic_ExplicitFixVerbatim(t *testing.T) {
	assert.Equal(t, "  keep spacing ", ForStatic("xss", "", "  keep spacing "))
}

func TestForDependency(t *testing.T) {
	assert.Equal(t, "Upgrade lodash to version 4.17.21 or later.", ForDependency("lodash", "4.17.21"))
	assert.Contains(t, ForDependency("lodash", types.NoFixAvailable), "No fix available")
	assert.Contains(t, ForDependency("lodash", ""), "No fix available")
	assert.Equal(t, "Upgrade to version 1.0 or later.", ForDependency("", "1.0"))
}

func TestFor(t *testing.T) {
	dep := types.Finding{Kind: types.KindDependency, Package: "openssl", Fixed: "3.0.8"}
	assert.Contains(t, For(dep, ""), "openssl")

	static := types.Finding{Kind: types.KindStatic, Message: "sql injection"}
	assert.Contains(t, For(static, ""), "parameterized")
}
