package source

type (
	// FileID identifies a script inside a FileSet.
	FileID uint32
	// FileFlags records how the content was obtained and normalised.
	FileFlags uint8
)

const (
	// FileVirtual marks content that did not come from disk (REPL line, stdin, tests).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File is one loaded script.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable position. Col counts runes, not bytes.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
