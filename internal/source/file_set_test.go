package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.hop", []byte("in 1"), 0)
	id2 := fs.Add("main.hop", []byte("in 2"), 0)
	if id1 != 0 || id2 != 1 {
		t.Fatalf("unexpected ids %d, %d", id1, id2)
	}

	latest, ok := fs.GetLatest("main.hop")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d, %v; want %d", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "in 1" {
		t.Errorf("old version lost: %q", got)
	}
	if fs.Get(id1).Hash == fs.Get(id2).Hash {
		t.Errorf("different content must hash differently")
	}
}

func TestAddVirtualNormalizes(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("<repl>", []byte("\xEF\xBB\xBFa\r\nb\r\n"))
	f := fs.Get(id)

	if string(f.Content) != "a\nb\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileVirtual == 0 || f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b", f.Flags)
	}
	want := []uint32{1, 3}
	if len(f.LineIdx) != len(want) || f.LineIdx[0] != want[0] || f.LineIdx[1] != want[1] {
		t.Errorf("LineIdx = %v, want %v", f.LineIdx, want)
	}
	if f.LineCount() != 2 {
		t.Errorf("LineCount = %d, want 2", f.LineCount())
	}
}

func TestResolveCountsRunes(t *testing.T) {
	fs := NewFileSet()
	src := "biến a = 1\nin đúng"
	id := fs.AddVirtual("x.hop", []byte(src))

	// "đúng" starts after "in " on line 2
	off := uint32(len("biến a = 1\nin "))
	start, end := fs.Resolve(Span{File: id, Start: off, End: uint32(len(src))})
	if start != (LineCol{Line: 2, Col: 4}) {
		t.Errorf("start = %+v", start)
	}
	if end != (LineCol{Line: 2, Col: 8}) {
		t.Errorf("end = %+v", end)
	}

	// "a" on line 1: "biến " is five runes but six bytes
	lc := fs.Get(id).LineCol(uint32(len("biến ")))
	if lc != (LineCol{Line: 1, Col: 6}) {
		t.Errorf("a = %+v", lc)
	}
	if got := fs.Text(Span{File: id, Start: off, End: uint32(len(src))}); got != "đúng" {
		t.Errorf("Text = %q", got)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("x.hop", []byte("một\nhai\n\nbốn")))

	cases := map[uint32]string{0: "", 1: "một", 2: "hai", 3: "", 4: "bốn", 5: ""}
	for n, want := range cases {
		if got := f.GetLine(n); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.hop")
	if err := os.WriteFile(path, []byte("in 1\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "in 1\n" {
		t.Errorf("content = %q", f.Content)
	}
	if got := f.FormatPath("relative", fs.BaseDir()); got != "a.hop" {
		t.Errorf("relative path = %q", got)
	}
	if got := f.FormatPath("basename", ""); got != "a.hop" {
		t.Errorf("basename = %q", got)
	}
	if _, err := fs.Load(filepath.Join(dir, "missing.hop")); err == nil {
		t.Errorf("expected error for missing file")
	}
}
