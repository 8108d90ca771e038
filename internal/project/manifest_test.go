package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hop/internal/diag"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[package]
name = "demo"

[run]
main = "src/main.hop"

[vm]
max_frames = 128
frame_slots = 64

[cache]
enabled = false
dir = ".cache"

[trace]
level = "phase"
`)
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "src", "main.hop"), []byte("in 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	m, ok, err := LoadManifest(nested)
	if err != nil || !ok {
		t.Fatalf("LoadManifest: ok=%v err=%v", ok, err)
	}
	if m.Root != root {
		t.Errorf("root = %q, want %q", m.Root, root)
	}
	cfg := m.Config
	if cfg.Package.Name != "demo" || cfg.VM.MaxFrames != 128 || cfg.VM.FrameSlots != 64 || cfg.Trace.Level != "phase" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.CacheEnabled() {
		t.Error("cache should be disabled")
	}
	if got := m.CacheDir(); got != filepath.Join(root, ".cache") {
		t.Errorf("cache dir = %q", got)
	}
	main, err := m.MainPath()
	if err != nil || main != filepath.Join(root, "src", "main.hop") {
		t.Errorf("MainPath = %q, %v", main, err)
	}
}

func TestDecodeManifestErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
		invalid bool
	}{
		{"bad toml", "[package\nname=1", "failed to parse TOML", false},
		{"no package", "[run]\nmain = \"a.hop\"\n", "missing [package]", true},
		{"no name", "[package]\nname = \"  \"\n", "missing [package].name", true},
		{"unknown key", "[package]\nname = \"x\"\n[vm]\nstack = 3\n", "unknown key vm.stack", true},
		{"negative", "[package]\nname = \"x\"\n[vm]\nmax_frames = -1\n", "must not be negative", true},
		{"huge frames", "[package]\nname = \"x\"\n[vm]\nmax_frames = 1000000000\n", "PRJ5001", true},
		{"huge slots", "[package]\nname = \"x\"\n[vm]\nframe_slots = 4097\n", "[vm].frame_slots 4097 exceeds 4096", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tc.content)
			_, err := DecodeManifest(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want %q", err, tc.want)
			}
			if errors.Is(err, ErrManifestInvalid) != tc.invalid {
				t.Errorf("errors.Is(ErrManifestInvalid) = %v", !tc.invalid)
			}
		})
	}
}

func TestManifestErrorCarriesCode(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[package]\nname = \"x\"\n[vm]\nmax_frames = 4097\n")
	_, err := DecodeManifest(path)
	var me *ManifestError
	if !errors.As(err, &me) {
		t.Fatalf("err = %v, want *ManifestError", err)
	}
	if me.Code() != diag.ProjManifestInvalid || me.Path != path {
		t.Errorf("code %s path %q", me.Code().ID(), me.Path)
	}

	ok := writeManifest(t, t.TempDir(), "[package]\nname = \"x\"\n[vm]\nmax_frames = 4096\nframe_slots = 4096\n")
	if _, err := DecodeManifest(ok); err != nil {
		t.Errorf("limits themselves must be accepted: %v", err)
	}
}

func TestMainPathErrors(t *testing.T) {
	dir := t.TempDir()
	m, err := DecodeManifest(writeManifest(t, dir, "[package]\nname = \"x\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.MainPath(); !errors.Is(err, ErrManifestInvalid) {
		t.Errorf("missing main: %v", err)
	}
	if !m.Config.CacheEnabled() || m.CacheDir() != "" {
		t.Error("cache defaults")
	}

	m.Config.Run.Main = "nope.hop"
	if _, err := m.MainPath(); err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("absent main: %v", err)
	}
	m.Config.Run.Main = "."
	if _, err := m.MainPath(); err == nil || !strings.Contains(err.Error(), "must be a file") {
		t.Errorf("dir main: %v", err)
	}
}

func TestDigest(t *testing.T) {
	a := StringDigest("a")
	if a.IsZero() || !(Digest{}).IsZero() {
		t.Fatal("IsZero")
	}
	if Combine(a) == Combine(a, "salt") {
		t.Fatal("salt must change the digest")
	}
	if Combine(a, "x", "y") != Combine(a, "x", "y") {
		t.Fatal("combine must be deterministic")
	}
	if Combine(a, "ab", "c") == Combine(a, "a", "bc") {
		t.Fatal("label boundaries must matter")
	}
	if len(a.String()) != 64 {
		t.Fatalf("hex length %d", len(a.String()))
	}
}
