package driver_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"hop/internal/buildpipeline"
	"hop/internal/diag"
	"hop/internal/driver"
	"hop/internal/observ"
	"hop/internal/trace"
	"hop/internal/vm"
)

func writeScript(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestCompileAndRun(t *testing.T) {
	path := writeScript(t, t.TempDir(), "main.hop", "biến x = 3\nin x * 4")
	timer := observ.NewTimer()
	res, err := driver.Compile(context.Background(), path, driver.CompileOptions{Timer: timer})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if res.Script == nil || res.Cached {
		t.Fatalf("script = %v, cached = %v", res.Script, res.Cached)
	}
	if !res.Timings.Has(buildpipeline.StageCompile) {
		t.Fatal("compile stage not timed")
	}

	var out bytes.Buffer
	run, err := driver.Run(context.Background(), res.Script, driver.RunOptions{
		VM:    vm.Options{Out: &out},
		Timer: timer,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if run.Status != vm.StatusOK || out.String() != "12\n" {
		t.Fatalf("status %s output %q", run.Status, out.String())
	}
	if run.RunID == "" {
		t.Fatal("empty run id")
	}
	if !strings.Contains(timer.Summary(), "compile") {
		t.Fatalf("timer summary missing compile phase:\n%s", timer.Summary())
	}
}

func TestCompileErrorIsReported(t *testing.T) {
	path := writeScript(t, t.TempDir(), "bad.hop", "in 1\nin (")
	res, err := driver.Compile(context.Background(), path, driver.CompileOptions{})
	if !errors.Is(err, driver.ErrCompile) {
		t.Fatalf("err = %v, want ErrCompile", err)
	}
	if driver.ExitCode(err) != driver.ExitCompile {
		t.Fatalf("exit code %d", driver.ExitCode(err))
	}
	if res.Script != nil {
		t.Fatal("script produced despite errors")
	}
	if res.Bag.ErrorCount() != 1 {
		t.Fatalf("errors = %d, want 1", res.Bag.ErrorCount())
	}
}

func TestCompileMissingFile(t *testing.T) {
	_, err := driver.Compile(context.Background(), filepath.Join(t.TempDir(), "nope.hop"), driver.CompileOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	if driver.ExitCode(err) != driver.ExitFailure {
		t.Fatalf("exit code %d", driver.ExitCode(err))
	}
}

func TestRuntimeErrorDumpsTraceRing(t *testing.T) {
	path := writeScript(t, t.TempDir(), "boom.hop", `in 1 - "a"`)
	tr, err := trace.New(trace.Config{Level: trace.LevelDebug, Mode: trace.ModeRing, RingSize: 64})
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	ctx := trace.WithTracer(context.Background(), tr)

	res, err := driver.Compile(ctx, path, driver.CompileOptions{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	var out, dump bytes.Buffer
	run, err := driver.Run(ctx, res.Script, driver.RunOptions{
		VM:        vm.Options{Out: &out},
		CrashDump: &dump,
	})
	if !errors.Is(err, driver.ErrRuntime) {
		t.Fatalf("err = %v, want ErrRuntime", err)
	}
	var rtErr *vm.RuntimeError
	if !errors.As(err, &rtErr) || rtErr.Code != vm.ErrTypeMismatch {
		t.Fatalf("runtime error = %v", err)
	}
	if driver.ExitCode(err) != driver.ExitRuntime {
		t.Fatalf("exit code %d", driver.ExitCode(err))
	}
	if run.Status != vm.StatusRuntimeError || run.Err != rtErr {
		t.Fatalf("result = %+v", run)
	}
	if !strings.HasPrefix(out.String(), "Lỗi: ") {
		t.Fatalf("error not printed: %q", out.String())
	}
	if !strings.Contains(dump.String(), run.RunID) || !strings.Contains(dump.String(), "compile") {
		t.Fatalf("crash dump:\n%s", dump.String())
	}
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cache, err := driver.OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	src := "hàm đôi(n) { trả n * 2 }\nin đôi(21)\nin \"xong\""
	path := writeScript(t, dir, "main.hop", src)
	opts := driver.CompileOptions{Cache: cache}

	first, err := driver.Compile(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("first compile: %v", err)
	}
	if first.Cached {
		t.Fatal("cold cache reported a hit")
	}
	second, err := driver.Compile(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("second compile: %v", err)
	}
	if !second.Cached {
		t.Fatal("warm cache missed")
	}

	for name, res := range map[string]*driver.CompileResult{"fresh": first, "cached": second} {
		var out bytes.Buffer
		if _, err := driver.Run(context.Background(), res.Script, driver.RunOptions{VM: vm.Options{Out: &out}}); err != nil {
			t.Fatalf("%s run: %v", name, err)
		}
		if out.String() != "42\nxong\n" {
			t.Fatalf("%s output %q", name, out.String())
		}
	}

	// a changed source must not hit the old entry
	writeScript(t, dir, "main.hop", "in 1")
	third, err := driver.Compile(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("third compile: %v", err)
	}
	if third.Cached {
		t.Fatal("edited script served from cache")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("drop: %v", err)
	}
	fourth, err := driver.Compile(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("fourth compile: %v", err)
	}
	if fourth.Cached {
		t.Fatal("hit after DropAll")
	}
}

func TestCacheHitReplaysWarnings(t *testing.T) {
	dir := t.TempDir()
	cache, err := driver.OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	path := writeScript(t, dir, "exit.hop", "in 1\nthoát\nin 2")
	opts := driver.CompileOptions{Cache: cache}

	var spans []string
	for i := range 2 {
		res, err := driver.Compile(context.Background(), path, opts)
		if err != nil {
			t.Fatalf("compile %d: %v", i, err)
		}
		if res.Cached != (i == 1) {
			t.Fatalf("compile %d: cached = %v", i, res.Cached)
		}
		items := res.Bag.Items()
		if len(items) != 1 || items[0].Code != diag.SemaUnreachableAfterExit || items[0].Severity != diag.SevWarning {
			t.Fatalf("compile %d: diagnostics %+v", i, items)
		}
		if items[0].Primary.File != res.File.ID {
			t.Fatalf("compile %d: warning anchored to file %d, want %d", i, items[0].Primary.File, res.File.ID)
		}
		spans = append(spans, fmt.Sprintf("%d-%d %s", items[0].Primary.Start, items[0].Primary.End, items[0].Message))
	}
	if spans[0] != spans[1] {
		t.Fatalf("cached warning %q differs from fresh %q", spans[1], spans[0])
	}
}

type eventLog struct {
	mu     sync.Mutex
	events []buildpipeline.Event
}

func (l *eventLog) OnEvent(ev buildpipeline.Event) {
	l.mu.Lock()
	l.events = append(l.events, ev)
	l.mu.Unlock()
}

func (l *eventLog) final(file string) buildpipeline.Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	var st buildpipeline.Status
	for _, ev := range l.events {
		if ev.File == file {
			st = ev.Status
		}
	}
	return st
}

func TestCheckFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeScript(t, dir, "good.hop", "in 1")
	bad := writeScript(t, dir, "bad.hop", "biến = 2")
	missing := filepath.Join(dir, "missing.hop")
	log := &eventLog{}

	res, err := driver.CheckFiles(context.Background(), []string{good, bad, missing}, driver.CheckOptions{
		Jobs:     2,
		BaseDir:  dir,
		Progress: log,
		Timer:    observ.NewTimer(),
	})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(res.Files) != 3 {
		t.Fatalf("files = %d", len(res.Files))
	}
	wantDisplay := []string{"good.hop", "bad.hop", "missing.hop"}
	for i, fc := range res.Files {
		if fc.Display != wantDisplay[i] {
			t.Fatalf("file %d display %q, want %q", i, fc.Display, wantDisplay[i])
		}
	}
	if res.Files[0].Err != nil || res.Files[0].Bag.Len() != 0 {
		t.Fatalf("good.hop: %v %v", res.Files[0].Err, res.Files[0].Bag.Items())
	}
	if !errors.Is(res.Files[1].Err, driver.ErrCompile) {
		t.Fatalf("bad.hop err = %v", res.Files[1].Err)
	}
	if res.Files[2].Err == nil || res.Files[2].Bag.Items()[0].Code != diag.IOReadFailed {
		t.Fatalf("missing.hop: %v", res.Files[2].Err)
	}
	if !res.Failed() || res.ErrorCount() != 2 {
		t.Fatalf("failed = %v, errors = %d", res.Failed(), res.ErrorCount())
	}
	if got := res.Diagnostics(0).Len(); got != 2 {
		t.Fatalf("merged diagnostics = %d", got)
	}

	if st := log.final("good.hop"); st != buildpipeline.StatusDone {
		t.Fatalf("good.hop final status %q", st)
	}
	if st := log.final("bad.hop"); st != buildpipeline.StatusError {
		t.Fatalf("bad.hop final status %q", st)
	}
	if st := log.final("missing.hop"); st != buildpipeline.StatusError {
		t.Fatalf("missing.hop final status %q", st)
	}
}

func TestCheckFilesCancelled(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writeScript(t, dir, "a.hop", "in 1"), writeScript(t, dir, "b.hop", "in 2")}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := driver.CheckFiles(ctx, paths, driver.CheckOptions{Jobs: 1}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestCheckFilesEmpty(t *testing.T) {
	res, err := driver.CheckFiles(context.Background(), nil, driver.CheckOptions{})
	if err != nil || len(res.Files) != 0 || res.Failed() {
		t.Fatalf("res = %+v, err = %v", res, err)
	}
}

func TestTokenize(t *testing.T) {
	path := writeScript(t, t.TempDir(), "t.hop", "in 1 @")
	res, err := driver.Tokenize(path, 10)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if n := len(res.Tokens); n != 4 {
		t.Fatalf("tokens = %d, want 4", n)
	}
	if res.Bag.ErrorCount() != 1 {
		t.Fatalf("lexical errors = %d", res.Bag.ErrorCount())
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, driver.ExitOK},
		{errors.New("io"), driver.ExitFailure},
		{fmt.Errorf("x.hop: %w", driver.ErrCompile), driver.ExitCompile},
		{fmt.Errorf("%w: boom", driver.ErrRuntime), driver.ExitRuntime},
	}
	for _, tt := range tests {
		if got := driver.ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestTimingReport(t *testing.T) {
	timer := observ.NewTimer()
	timer.Track("compile", func() string { return "" })
	rep := driver.NewTimingReport("", "main.hop", timer)
	if rep.Kind != "pipeline" || len(rep.Phases) != 1 {
		t.Fatalf("report = %+v", rep)
	}
	if !strings.HasPrefix(rep.Headline(), "timings (pipeline): total ") || !strings.HasSuffix(rep.Headline(), "(main.hop)") {
		t.Fatalf("headline %q", rep.Headline())
	}
	var buf bytes.Buffer
	if err := rep.WriteJSON(&buf); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(buf.String(), `"phases":[{"name":"compile"`) {
		t.Fatalf("json %s", buf.String())
	}

	empty := driver.NewTimingReport("run", "", nil)
	if empty.Phases == nil || empty.TotalMS != 0 {
		t.Fatalf("empty report = %+v", empty)
	}
}
