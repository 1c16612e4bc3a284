package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Lines   []string // content split on '\n', without terminators
	Hash    [32]byte
	Flags   FileFlags
}

// LineCount returns the number of lines in the file.
func (f *File) LineCount() int { return len(f.Lines) }

// Line returns the 1-based line n, or "" when n is out of range.
func (f *File) Line(n uint32) string {
	if n == 0 || int(n) > len(f.Lines) {
		return ""
	}
	return f.Lines[n-1]
}
