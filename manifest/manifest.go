// Package manifest handles jbridge.toml configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/jbridge/jni"
	"github.com/chazu/jbridge/vm"
)

// FileName is the name Load looks for.
const FileName = "jbridge.toml"

// Manifest represents a jbridge.toml configuration.
type Manifest struct {
	Logging Logging `toml:"logging"`
	Bridge  Bridge  `toml:"bridge"`
	VM      VM      `toml:"vm"`
	Trace   Trace   `toml:"trace"`

	// Dir is the directory containing the jbridge.toml file (set at load time).
	Dir string `toml:"-"`
}

// Logging configures the commonlog backend. Verbosity 0 logs notices and
// above, 1 adds info, 2 adds debug; negative values silence more.
type Logging struct {
	Verbosity int    `toml:"verbosity"`
	Path      string `toml:"path"`
}

// Bridge mirrors jni.Options.
type Bridge struct {
	DescribeExceptions bool `toml:"describe-exceptions"`
	KeepPackedStrings  bool `toml:"keep-packed-strings"`
}

// VM configures the in-process runtime.
type VM struct {
	LocalCapacity int `toml:"local-capacity"`
}

// Trace configures call recording.
type Trace struct {
	Enabled bool   `toml:"enabled"`
	DB      string `toml:"db"`
}

// Default returns the configuration used when no jbridge.toml exists.
func Default() *Manifest {
	return &Manifest{
		Logging: Logging{Verbosity: 0},
		Bridge:  Bridge{DescribeExceptions: true},
		VM:      VM{LocalCapacity: vm.DefaultLocalCapacity},
		Trace:   Trace{DB: ".jbridge/traces.db"},
	}
}

// Load parses a jbridge.toml file from the given directory. Keys the file
// leaves out keep their Default values.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	m := Default()
	md, err := toml.Decode(string(data), m)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	return m, nil
}

func (m *Manifest) validate() error {
	if m.VM.LocalCapacity <= 0 {
		return fmt.Errorf("vm.local-capacity must be positive, got %d", m.VM.LocalCapacity)
	}
	if m.Trace.Enabled && m.Trace.DB == "" {
		return fmt.Errorf("trace.db is required when tracing is enabled")
	}
	return nil
}

// FindAndLoad walks up from startDir to find a jbridge.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return Load(dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// Options converts the bridge section.
func (m *Manifest) Options() jni.Options {
	return jni.Options{
		DescribeExceptions: m.Bridge.DescribeExceptions,
		KeepPackedStrings:  m.Bridge.KeepPackedStrings,
	}
}

// VMOptions converts the vm section.
func (m *Manifest) VMOptions() []vm.Option {
	return []vm.Option{vm.WithLocalCapacity(m.VM.LocalCapacity)}
}

// TraceDBPath resolves trace.db against the manifest directory.
func (m *Manifest) TraceDBPath() string {
	if m.Trace.DB == ":memory:" || filepath.IsAbs(m.Trace.DB) || m.Dir == "" {
		return m.Trace.DB
	}
	return filepath.Join(m.Dir, m.Trace.DB)
}

// Apply installs the bridge options and configures logging.
func (m *Manifest) Apply() {
	jni.SetOptions(m.Options())
	var path *string
	if m.Logging.Path != "" {
		p := m.Logging.Path
		if !filepath.IsAbs(p) && m.Dir != "" {
			p = filepath.Join(m.Dir, p)
		}
		path = &p
	}
	commonlog.Configure(m.Logging.Verbosity, path)
}
