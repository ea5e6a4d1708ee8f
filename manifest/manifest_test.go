package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/jbridge/vm"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[logging]
verbosity = 2
path = "bridge.log"

[bridge]
describe-exceptions = false
keep-packed-strings = true

[vm]
local-capacity = 64

[trace]
enabled = true
db = "out/traces.db"
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if m.Logging.Verbosity != 2 {
		t.Errorf("logging verbosity = %d, want 2", m.Logging.Verbosity)
	}
	if m.Logging.Path != "bridge.log" {
		t.Errorf("logging path = %q, want bridge.log", m.Logging.Path)
	}
	if m.Bridge.DescribeExceptions {
		t.Error("bridge describe-exceptions = true, want false")
	}
	if !m.Bridge.KeepPackedStrings {
		t.Error("bridge keep-packed-strings = false, want true")
	}
	if m.VM.LocalCapacity != 64 {
		t.Errorf("vm local-capacity = %d, want 64", m.VM.LocalCapacity)
	}
	if !m.Trace.Enabled {
		t.Error("trace enabled = false, want true")
	}
	if want := filepath.Join(m.Dir, "out", "traces.db"); m.TraceDBPath() != want {
		t.Errorf("trace db path = %q, want %q", m.TraceDBPath(), want)
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[trace]
enabled = true
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !m.Bridge.DescribeExceptions {
		t.Error("default describe-exceptions = false, want true")
	}
	if m.Bridge.KeepPackedStrings {
		t.Error("default keep-packed-strings = true, want false")
	}
	if m.VM.LocalCapacity != vm.DefaultLocalCapacity {
		t.Errorf("default local-capacity = %d, want %d", m.VM.LocalCapacity, vm.DefaultLocalCapacity)
	}
	if m.Trace.DB != ".jbridge/traces.db" {
		t.Errorf("default trace db = %q, want .jbridge/traces.db", m.Trace.DB)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[bridge\n", "parse error"},
		{"unknown key", "[bridge]\ndescribe = true\n", "unknown keys"},
		{"unknown section", "[jvm]\nheap = 1\n", "jvm.heap"},
		{"wrong type", "[vm]\nlocal-capacity = \"big\"\n", "parse error"},
		{"zero capacity", "[vm]\nlocal-capacity = 0\n", "local-capacity must be positive"},
		{"trace without db", "[trace]\nenabled = true\ndb = \"\"\n", "trace.db is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, dir, tt.content)
			_, err := Load(dir)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestLoadManifestMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "cannot read") {
		t.Errorf("Load of empty dir = %v, want cannot read error", err)
	}
}

func TestFindAndLoad(t *testing.T) {
	dir := t.TempDir()
	subDir := filepath.Join(dir, "a", "b", "c")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatal(err)
	}
	writeManifest(t, dir, "[vm]\nlocal-capacity = 16\n")

	m, err := FindAndLoad(subDir)
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if m == nil {
		t.Fatal("FindAndLoad returned nil")
	}
	if m.VM.LocalCapacity != 16 {
		t.Errorf("local-capacity = %d, want 16", m.VM.LocalCapacity)
	}
	abs, _ := filepath.Abs(dir)
	if m.Dir != abs {
		t.Errorf("Dir = %q, want %q", m.Dir, abs)
	}
}

func TestFindAndLoadNotFound(t *testing.T) {
	dir := t.TempDir()
	m, err := FindAndLoad(dir)
	if err != nil {
		t.Fatalf("FindAndLoad error: %v", err)
	}
	if m != nil {
		t.Error("expected nil manifest when no jbridge.toml exists")
	}
}

func TestOptions(t *testing.T) {
	m := Default()
	m.Bridge.KeepPackedStrings = true
	m.VM.LocalCapacity = 8

	o := m.Options()
	if !o.DescribeExceptions || !o.KeepPackedStrings {
		t.Errorf("Options() = %+v, want both set", o)
	}

	env := vm.New(m.VMOptions()...).NewEnv()
	if env.LocalCapacity() != 8 {
		t.Errorf("local capacity = %d, want 8", env.LocalCapacity())
	}
}

func TestTraceDBPath(t *testing.T) {
	tests := []struct {
		dir, db, want string
	}{
		{"/app", ".jbridge/traces.db", "/app/.jbridge/traces.db"},
		{"/app", "/var/traces.db", "/var/traces.db"},
		{"/app", ":memory:", ":memory:"},
		{"", "traces.db", "traces.db"},
	}
	for _, tt := range tests {
		m := &Manifest{Dir: tt.dir, Trace: Trace{DB: tt.db}}
		if got := m.TraceDBPath(); got != tt.want {
			t.Errorf("TraceDBPath(%q, %q) = %q, want %q", tt.dir, tt.db, got, tt.want)
		}
	}
}
