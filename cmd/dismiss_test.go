// Test file for the dismiss and dismissed commands.
//
// Globals mutated: settings, stdout (via captureOutput).
// All tests use defer resetFlags()() for cleanup.
package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDismiss_Roundtrip(t *testing.T) {
	defer resetFlags()()
	dir, src := writeReports(t)

	before := viewModel(t, src...)
	key := before.Tables[0].Rows[0].Key
	if !strings.HasPrefix(key, "sast:") {
		t.Fatalf("expected a sast key, got %q", key)
	}
	resetFlags()

	output := run(t, append([]string{"dismiss", key}, src...)...)
	if strings.TrimSpace(output) != "dismissed "+key {
		t.Errorf("unexpected dismiss output %q", output)
	}
	if _, err := os.Stat(filepath.Join(dir, "dismissed.json")); err != nil {
		t.Errorf("expected dismissal file to be written: %v", err)
	}
	resetFlags()

	after := viewModel(t, src...)
	if after.Summary.Total != before.Summary.Total-1 || after.Summary.Dismissed != 1 {
		t.Errorf("summary after dismissal: total=%d dismissed=%d", after.Summary.Total, after.Summary.Dismissed)
	}
	for _, r := range after.Tables[0].Rows {
		if r.Key == key {
			t.Error("dismissed finding still listed")
		}
	}
	resetFlags()

	shown := viewModel(t, append(src, "--show-dismissed")...)
	found := false
	for _, r := range shown.Tables[0].Rows {
		if r.Key == key && r.Dismissed {
			found = true
		}
	}
	if !found {
		t.Error("expected dismissed finding with --show-dismissed")
	}
	resetFlags()

	listed := run(t, append([]string{"dismissed"}, src...)...)
	if !strings.Contains(listed, key) || !strings.Contains(listed, "javascript.browser.security.xss") {
		t.Errorf("expected dismissed listing to describe %s, got:\n%s", key, listed)
	}
	resetFlags()

	output = run(t, append([]string{"dismiss", key}, src...)...)
	if strings.TrimSpace(output) != "restored "+key {
		t.Errorf("unexpected restore output %q", output)
	}
}

func TestDismiss_UnknownKeyIsStored(t *testing.T) {
	defer resetFlags()()
	_, src := writeReports(t)

	run(t, append([]string{"dismiss", "sast:gone"}, src...)...)
	resetFlags()

	listed := run(t, append([]string{"dismissed"}, src...)...)
	if !strings.Contains(listed, "sast:gone") || !strings.Contains(listed, "not in current reports") {
		t.Errorf("unexpected listing:\n%s", listed)
	}
}

func TestDismissed_OrdersBySeverity(t *testing.T) {
	defer resetFlags()()
	_, src := writeReports(t)

	m := viewModel(t, src...)
	static := m.Tables[0].Rows
	lowKey := static[len(static)-1].Key
	imageKey := m.Tables[2].Rows[0].Key
	resetFlags()

	run(t, append([]string{"dismiss", lowKey, "sast:gone", imageKey}, src...)...)
	resetFlags()

	listed := run(t, append([]string{"dismissed"}, src...)...)
	image, low, gone := strings.Index(listed, imageKey), strings.Index(listed, lowKey), strings.Index(listed, "sast:gone")
	if image < 0 || low < 0 || gone < 0 {
		t.Fatalf("expected all three keys in listing:\n%s", listed)
	}
	if !(image < low && low < gone) {
		t.Errorf("expected critical, then low, then unknown keys:\n%s", listed)
	}
}

func TestDismissed_Empty(t *testing.T) {
	defer resetFlags()()
	_, src := writeReports(t)

	output := run(t, append([]string{"dismissed"}, src...)...)
	if !strings.Contains(output, "No dismissed findings.") {
		t.Errorf("unexpected output %q", output)
	}
}

func TestDismiss_RequiresKey(t *testing.T) {
	defer resetFlags()()

	rootCmd.SetArgs([]string{"dismiss"})
	captureOutput(func() {
		if err := rootCmd.Execute(); err == nil {
			t.Error("expected an error without keys")
		}
	})
}
