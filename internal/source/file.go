package source

import (
	"fmt"

	"fortio.org/safecast"
)

type (
	// FileID identifies a source file within a FileSet.
	FileID uint32
	// FileFlags records what normalisation was applied on load.
	FileFlags uint8
)

const (
	// FileVirtual marks content added from memory (tests, stdin).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File is one loaded compilation unit. Content is normalised (no BOM, LF only);
// every offset used by the fragment tree and the model refers to Content.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based position.
type LineCol struct {
	Line uint32
	Col  uint32
}

func (lc LineCol) String() string {
	return fmt.Sprintf("%d:%d", lc.Line, lc.Col)
}

// Len returns the content length as an offset.
func (f *File) Len() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("source: content length overflow: %w", err))
	}
	return n
}

// Span returns the span covering the whole file.
func (f *File) Span() Span {
	return Span{File: f.ID, Start: 0, End: f.Len()}
}

// Text returns the bytes of span as a string. Out of range spans are clamped.
func (f *File) Text(span Span) string {
	n := f.Len()
	start, end := span.Start, span.End
	if end > n {
		end = n
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}

// Position converts an offset into a line/column pair.
func (f *File) Position(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// Restore re-applies the normalisation undone on load so that output written
// back to disk keeps the file's original line endings and BOM.
func (f *File) Restore(out []byte) []byte {
	if f.Flags&FileNormalizedCRLF != 0 {
		out = restoreCRLF(out)
	}
	if f.Flags&FileHadBOM != 0 {
		out = append([]byte{0xEF, 0xBB, 0xBF}, out...)
	}
	return out
}
