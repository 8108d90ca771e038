package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns every script seen during one invocation of the tool.
type FileSet struct {
	files   []File
	index   map[string]FileID // path -> latest id
	baseDir string
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// NewFileSetWithBase creates a FileSet that prints paths relative to baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// BaseDir returns the directory used for relative path display,
// defaulting to the working directory.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fileSet.baseDir
}

// Add stores already-normalised content and returns a fresh FileID.
// Re-adding a path creates a new version; GetLatest returns the newest one.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("file %s too large: %w", path, err))
	}
	id := FileID(n)
	normalized := normalizePath(path)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalized,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fileSet.index[normalized] = id
	return id
}

// Load reads a script from disk, strips a UTF-8 BOM and folds CRLF line endings.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fileSet.AddNormalized(path, content, 0), nil
}

// AddNormalized applies BOM/CRLF normalisation and calls Add.
func (fileSet *FileSet) AddNormalized(path string, content []byte, flags FileFlags) FileID {
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags)
}

// AddVirtual adds in-memory content (REPL line, stdin, test input).
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.AddNormalized(name, content, FileVirtual)
}

// Get returns the file for id. It panics on an unknown id.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// Len reports how many file versions are stored.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// GetLatest returns the newest FileID registered under path.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into start and end positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := &fileSet.files[span.File]
	return f.LineCol(span.Start), f.LineCol(span.End)
}

// Text returns the source bytes covered by span.
func (fileSet *FileSet) Text(span Span) string {
	f := &fileSet.files[span.File]
	if int(span.End) > len(f.Content) || span.Start > span.End {
		return ""
	}
	return string(f.Content[span.Start:span.End])
}

// LineCol maps a byte offset inside f to a line and rune column.
func (f *File) LineCol(off uint32) LineCol {
	return toLineCol(f.Content, f.LineIdx, off)
}

// LineCount returns the number of lines, counting a trailing partial line.
func (f *File) LineCount() uint32 {
	n := uint32(len(f.LineIdx)) + 1
	if len(f.LineIdx) > 0 && int(f.LineIdx[len(f.LineIdx)-1]) == len(f.Content)-1 {
		n--
	}
	return n
}

// GetLine returns the text of line lineNum (1-based) without its newline.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	lines := len(f.LineIdx)
	idx := int(lineNum - 1)
	if idx > lines {
		return ""
	}
	start := lineStart(f.LineIdx, idx)
	end := uint32(len(f.Content))
	if idx < lines {
		end = f.LineIdx[idx]
	}
	if int(start) > len(f.Content) {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath renders the path for display.
// mode: "absolute", "relative", "basename", "auto".
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
	case "relative":
		if f.Flags&FileVirtual != 0 {
			return f.Path
		}
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case "basename":
		return BaseName(f.Path)
	case "auto":
		if len(f.Path) < 40 || !filepath.IsAbs(f.Path) {
			return f.Path
		}
		return BaseName(f.Path)
	}
	return f.Path
}
