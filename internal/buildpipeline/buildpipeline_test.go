package buildpipeline

import (
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("in 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestCollectScripts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.hop"))
	writeFile(t, filepath.Join(dir, "a.hop"))
	writeFile(t, filepath.Join(dir, "sub", "c.hop"))
	writeFile(t, filepath.Join(dir, "notes.txt"))
	writeFile(t, filepath.Join(dir, ".git", "x.hop"))
	single := filepath.Join(dir, "notes.txt")

	got, err := CollectScripts([]string{dir, single, filepath.Join(dir, "a.hop")})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.hop"),
		filepath.Join(dir, "b.hop"),
		filepath.Join(dir, "notes.txt"),
		filepath.Join(dir, "sub", "c.hop"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v\nwant %v", got, want)
	}

	if _, err := CollectScripts([]string{filepath.Join(dir, "missing.hop")}); err == nil {
		t.Fatal("expected error for a missing target")
	}
}

func TestDisplayPaths(t *testing.T) {
	base := t.TempDir()
	files := []string{
		filepath.Join(base, "x", "main.hop"),
		filepath.Join(filepath.Dir(base), "outside.hop"),
	}
	got := DisplayPaths(files, base)
	if got[0] != "x/main.hop" {
		t.Errorf("got %q", got[0])
	}
	if !filepath.IsAbs(filepath.FromSlash(got[1])) {
		t.Errorf("escaping path should stay absolute, got %q", got[1])
	}
	if DisplayPaths([]string{"a/../b.hop"}, "")[0] != "b.hop" {
		t.Error("expected cleaned path without base")
	}
}

func TestTimingsAccumulate(t *testing.T) {
	var tm Timings
	if tm.Has(StageCompile) {
		t.Fatal("empty timings")
	}
	tm.Add(StageCompile, time.Millisecond)
	tm.Add(StageCompile, 2*time.Millisecond)
	tm.Add(StageRun, 5*time.Millisecond)
	if tm.Duration(StageCompile) != 3*time.Millisecond {
		t.Errorf("compile = %v", tm.Duration(StageCompile))
	}
	if tm.Sum(StageCompile, StageRun, StageLex) != 8*time.Millisecond {
		t.Errorf("sum = %v", tm.Sum(StageCompile, StageRun))
	}
}

func TestSinks(t *testing.T) {
	var mu sync.Mutex
	var got []Event
	sink := FuncSink(func(e Event) {
		mu.Lock()
		got = append(got, e)
		mu.Unlock()
	})
	EmitQueued(sink, []string{"a.hop", "b.hop"})
	Emit(sink, "a.hop", StageCompile, StatusDone, nil, time.Second)
	Emit(nil, "ignored", StageRun, StatusDone, nil, 0)
	if len(got) != 3 || got[0].Status != StatusQueued || got[2].Stage != StageCompile {
		t.Fatalf("unexpected events %+v", got)
	}

	ch := make(chan Event, 1)
	ChannelSink{Ch: ch}.OnEvent(Event{File: "c.hop"})
	if (<-ch).File != "c.hop" {
		t.Fatal("channel sink lost the event")
	}
	ChannelSink{}.OnEvent(Event{})
}
