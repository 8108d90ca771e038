package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"hop/internal/diag"
)

// ManifestName is the file looked up by FindManifest.
const ManifestName = "hop.toml"

// ErrManifestInvalid wraps every validation failure of hop.toml.
var ErrManifestInvalid = errors.New("invalid hop.toml")

// Upper bounds for the [vm] table; the value stack is MaxFrames*FrameSlots.
const (
	MaxVMFrames     = 4096
	MaxVMFrameSlots = 4096
)

// ManifestError is a validation failure reported as PRJ5001.
type ManifestError struct {
	Path   string
	Reason string
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("%s %s: %s: %s", e.Code().ID(), e.Path, ErrManifestInvalid, e.Reason)
}

func (e *ManifestError) Unwrap() error { return ErrManifestInvalid }

// Code is the diagnostic code of every manifest validation failure.
func (e *ManifestError) Code() diag.Code { return diag.ProjManifestInvalid }

func invalid(path, format string, args ...any) error {
	return &ManifestError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// Manifest is a decoded hop.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package PackageConfig `toml:"package"`
	Run     RunConfig     `toml:"run"`
	VM      VMConfig      `toml:"vm"`
	Cache   CacheConfig   `toml:"cache"`
	Trace   TraceConfig   `toml:"trace"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type RunConfig struct {
	Main string `toml:"main"`
}

// VMConfig sizes the interpreter. Zero means the VM default.
type VMConfig struct {
	MaxFrames  int `toml:"max_frames"`
	FrameSlots int `toml:"frame_slots"`
}

type CacheConfig struct {
	Enabled *bool  `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Mode   string `toml:"mode"`
	Output string `toml:"output"`
}

// CacheEnabled reports the [cache].enabled value, defaulting to true.
func (c Config) CacheEnabled() bool {
	return c.Cache.Enabled == nil || *c.Cache.Enabled
}

// FindManifest walks up from startDir to locate hop.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadManifest finds and decodes the nearest hop.toml. ok is false when
// there is none; that is not an error.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := DecodeManifest(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// DecodeManifest parses and validates the manifest at path.
func DecodeManifest(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, invalid(path, "unknown key %s", undecoded[0])
	}
	if !meta.IsDefined("package") {
		return nil, invalid(path, "missing [package]")
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, invalid(path, "missing [package].name")
	}
	if cfg.VM.MaxFrames < 0 || cfg.VM.FrameSlots < 0 {
		return nil, invalid(path, "[vm] sizes must not be negative")
	}
	if cfg.VM.MaxFrames > MaxVMFrames {
		return nil, invalid(path, "[vm].max_frames %d exceeds %d", cfg.VM.MaxFrames, MaxVMFrames)
	}
	if cfg.VM.FrameSlots > MaxVMFrameSlots {
		return nil, invalid(path, "[vm].frame_slots %d exceeds %d", cfg.VM.FrameSlots, MaxVMFrameSlots)
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// MainPath resolves [run].main against the manifest directory.
func (m *Manifest) MainPath() (string, error) {
	mainRel := strings.TrimSpace(m.Config.Run.Main)
	if mainRel == "" {
		return "", invalid(m.Path, "missing [run].main")
	}
	mainPath := filepath.Join(m.Root, filepath.FromSlash(mainRel))
	info, err := os.Stat(mainPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [run].main path does not exist: %s", m.Path, mainPath)
		}
		return "", fmt.Errorf("%s: failed to stat [run].main: %w", m.Path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s: [run].main must be a file, got directory %s", m.Path, mainPath)
	}
	return mainPath, nil
}

// CacheDir resolves [cache].dir; relative paths are taken from the manifest
// directory. Empty means the user cache directory.
func (m *Manifest) CacheDir() string {
	dir := strings.TrimSpace(m.Config.Cache.Dir)
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(m.Root, dir)
}
