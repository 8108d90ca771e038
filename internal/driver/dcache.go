package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"hop/internal/bytecode"
	"hop/internal/diag"
	"hop/internal/project"
	"hop/internal/source"
	"hop/internal/version"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 2

// DiskCache хранит скомпилированный байткод скриптов на диске,
// по одному файлу на хеш исходника. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the on-disk form of one compiled script.
type DiskPayload struct {
	Schema     uint16
	Tool       string // version.Version of the writer
	SourceHash project.Digest
	Path       string // informational
	Script     *CachedFunction
	Warnings   []CachedDiagnostic // compile warnings, replayed on a hit
}

// CachedDiagnostic is a diagnostic of the cached file; the span is
// re-anchored to whatever FileID the file gets on load.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Start    uint32
	End      uint32
	Message  string
}

// CachedFunction mirrors bytecode.Function. Constants of a compiled chunk
// are only ever numbers, strings and nested functions.
type CachedFunction struct {
	Name      string
	Arity     int
	Code      []byte
	Lines     []uint32
	Cols      []uint32
	Constants []CachedConstant
}

type CachedConstant struct {
	Kind uint8
	Num  float64
	Str  string
	Fn   *CachedFunction
}

var errUncacheable = errors.New("constant kind cannot be cached")

// OpenDiskCache initializes a cache under $XDG_CACHE_HOME/app (or ~/.cache/app).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt initializes a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

// ScriptKey derives the cache key of a source file. The tool version and
// schema are mixed in so that a new compiler never reads stale bytecode.
func ScriptKey(file *source.File) project.Digest {
	return project.Combine(project.Digest(file.Hash),
		fmt.Sprintf("hop-bytecode/%d", diskCacheSchemaVersion),
		version.Version,
	)
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := key.String()
	// подкаталог по первым двум символам, как в git objects
	return filepath.Join(c.dir, "bc", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		// после успешного Rename файла уже нет
		if rmErr := os.Remove(tmp); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	err = os.Rename(tmp, p)
	return err
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (found bool, err error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// Store caches the compiled script of file together with the warnings its
// compilation produced.
func (c *DiskCache) Store(file *source.File, script *bytecode.Function, warnings []diag.Diagnostic) error {
	if c == nil {
		return nil
	}
	cached, err := encodeFunction(script)
	if err != nil {
		return err
	}
	return c.Put(ScriptKey(file), &DiskPayload{
		Schema:     diskCacheSchemaVersion,
		Tool:       version.Version,
		SourceHash: project.Digest(file.Hash),
		Path:       file.Path,
		Script:     cached,
		Warnings:   encodeWarnings(warnings),
	})
}

// Load returns the cached script of file and its stored warnings. A payload
// written by another schema or tool version counts as a miss.
func (c *DiskCache) Load(file *source.File) (*bytecode.Function, []diag.Diagnostic, bool, error) {
	if c == nil {
		return nil, nil, false, nil
	}
	var payload DiskPayload
	ok, err := c.Get(ScriptKey(file), &payload)
	if err != nil || !ok {
		return nil, nil, false, err
	}
	if payload.Schema != diskCacheSchemaVersion || payload.Tool != version.Version ||
		payload.SourceHash != project.Digest(file.Hash) || payload.Script == nil {
		return nil, nil, false, nil
	}
	fn, err := decodeFunction(payload.Script)
	if err != nil {
		return nil, nil, false, err
	}
	return fn, decodeWarnings(payload.Warnings, file.ID), true, nil
}

func encodeWarnings(ds []diag.Diagnostic) []CachedDiagnostic {
	var out []CachedDiagnostic
	for _, d := range ds {
		if d.Severity >= diag.SevError || d.Code.IsHost() {
			continue
		}
		out = append(out, CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		})
	}
	return out
}

func decodeWarnings(cds []CachedDiagnostic, file source.FileID) []diag.Diagnostic {
	if len(cds) == 0 {
		return nil
	}
	out := make([]diag.Diagnostic, 0, len(cds))
	for _, cd := range cds {
		span := source.Span{File: file, Start: cd.Start, End: cd.End}
		out = append(out, diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), span, cd.Message))
	}
	return out
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

func encodeFunction(fn *bytecode.Function) (*CachedFunction, error) {
	out := &CachedFunction{
		Name:      fn.Name,
		Arity:     fn.Arity,
		Code:      fn.Chunk.Code,
		Lines:     fn.Chunk.Lines,
		Cols:      fn.Chunk.Cols,
		Constants: make([]CachedConstant, len(fn.Chunk.Constants)),
	}
	for i, v := range fn.Chunk.Constants {
		cc := CachedConstant{Kind: uint8(v.Kind)}
		switch v.Kind {
		case bytecode.VKNumber:
			cc.Num = v.Num
		case bytecode.VKString:
			cc.Str = v.Str
		case bytecode.VKFunc:
			nested, err := encodeFunction(v.Fn)
			if err != nil {
				return nil, err
			}
			cc.Fn = nested
		default:
			return nil, fmt.Errorf("%w: %s", errUncacheable, v.Kind)
		}
		out.Constants[i] = cc
	}
	return out, nil
}

func decodeFunction(cf *CachedFunction) (*bytecode.Function, error) {
	if len(cf.Lines) != len(cf.Code) || len(cf.Cols) != len(cf.Code) {
		return nil, fmt.Errorf("cached function %q: position table mismatch", cf.Name)
	}
	fn := &bytecode.Function{
		Name:  cf.Name,
		Arity: cf.Arity,
		Chunk: bytecode.Chunk{
			Code:      cf.Code,
			Lines:     cf.Lines,
			Cols:      cf.Cols,
			Constants: make([]bytecode.Value, len(cf.Constants)),
		},
	}
	for i, cc := range cf.Constants {
		switch bytecode.ValueKind(cc.Kind) {
		case bytecode.VKNumber:
			fn.Chunk.Constants[i] = bytecode.NumberValue(cc.Num)
		case bytecode.VKString:
			fn.Chunk.Constants[i] = bytecode.StringValue(cc.Str)
		case bytecode.VKFunc:
			if cc.Fn == nil {
				return nil, fmt.Errorf("cached function %q: empty nested function", cf.Name)
			}
			nested, err := decodeFunction(cc.Fn)
			if err != nil {
				return nil, err
			}
			fn.Chunk.Constants[i] = bytecode.FuncValue(nested)
		default:
			return nil, fmt.Errorf("%w: kind %d", errUncacheable, cc.Kind)
		}
	}
	return fn, nil
}
