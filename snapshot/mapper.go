// Package snapshot defines the immutable view of one file's text that the
// rename engine operates over, along with the position arithmetic needed
// to translate between the three coordinate systems in play: byte
// offsets, 1-based UTF-8 (line, column) pairs as reported by the Swift
// and Clang backends, and 0-based UTF-16 (line, character) LSP positions.
package snapshot

import (
	"bytes"
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"

	"go.lsp.dev/protocol"
)

// A Mapper wraps one file's content and provides mapping between byte
// offsets and the two position notations the engine must bridge:
// 1-based UTF-8 (line, column) pairs (the wire format used by the Swift
// and Clang backends, per spec §6) and 0-based UTF-16 (line, character)
// LSP positions.
//
// Line information is computed lazily since most Mappers are used only
// for a handful of conversions.
type Mapper struct {
	URI     protocol.DocumentURI
	Content []byte

	linesOnce sync.Once
	lineStart []int // byte offset of the start of the i'th line (0-based)
	nonASCII  bool
}

// NewMapper creates a Mapper over the given URI and content.
func NewMapper(uri protocol.DocumentURI, content []byte) *Mapper {
	return &Mapper{URI: uri, Content: content}
}

func (m *Mapper) initLines() {
	m.linesOnce.Do(func() {
		nlines := bytes.Count(m.Content, []byte("\n"))
		m.lineStart = make([]int, 1, nlines+1)
		for offset, b := range m.Content {
			if b == '\n' {
				m.lineStart = append(m.lineStart, offset+1)
			}
			if b >= utf8.RuneSelf {
				m.nonASCII = true
			}
		}
	})
}

// LineCol8ToOffset converts a 1-based UTF-8 (line, column) pair, as
// reported by the Swift/Clang backends, to a byte offset.
func (m *Mapper) LineCol8ToOffset(line, col8 int) (int, error) {
	m.initLines()
	line0 := line - 1
	if line0 < 0 || line0 >= len(m.lineStart) {
		return 0, fmt.Errorf("line number %d out of range (max %d)", line, len(m.lineStart))
	}
	start := m.lineStart[line0]
	offset := start + col8 - 1
	if offset < start {
		return 0, fmt.Errorf("column %d out of range on line %d", col8, line)
	}
	if offset > len(m.Content) {
		return 0, fmt.Errorf("column is beyond end of file")
	}
	if line0+1 < len(m.lineStart) && offset >= m.lineStart[line0+1] {
		return 0, fmt.Errorf("column is beyond end of line")
	}
	return offset, nil
}

// OffsetToLineCol8 converts a valid byte offset to a 1-based UTF-8 (line,
// column) pair.
func (m *Mapper) OffsetToLineCol8(offset int) (line, col8 int, err error) {
	m.initLines()
	if offset < 0 || offset > len(m.Content) {
		return 0, 0, fmt.Errorf("invalid offset %d (want 0-%d)", offset, len(m.Content))
	}
	line0, start := m.lineAt(offset)
	return line0 + 1, offset - start + 1, nil
}

// lineAt returns the 0-based line index enclosing offset and that line's
// starting byte offset.
func (m *Mapper) lineAt(offset int) (int, int) {
	line := sort.Search(len(m.lineStart), func(i int) bool {
		return offset < m.lineStart[i]
	})
	line--
	return line, m.lineStart[line]
}

// OffsetToPosition converts a valid byte offset to a 0-based UTF-16 LSP
// position.
func (m *Mapper) OffsetToPosition(offset int) (protocol.Position, error) {
	m.initLines()
	if offset < 0 || offset > len(m.Content) {
		return protocol.Position{}, fmt.Errorf("invalid offset %d (want 0-%d)", offset, len(m.Content))
	}
	line, start := m.lineAt(offset)
	var col16 int
	if m.nonASCII {
		col16 = utf16Len(m.Content[start:offset])
	} else {
		col16 = offset - start
	}
	return protocol.Position{Line: uint32(line), Character: uint32(col16)}, nil
}

// PositionToOffset converts a 0-based UTF-16 LSP position to a byte
// offset.
func (m *Mapper) PositionToOffset(p protocol.Position) (int, error) {
	m.initLines()
	if p.Line > uint32(len(m.lineStart)) {
		return 0, fmt.Errorf("line number %d out of range 0-%d", p.Line, len(m.lineStart))
	}
	if p.Line == uint32(len(m.lineStart)) {
		if p.Character == 0 {
			return len(m.Content), nil
		}
		return 0, fmt.Errorf("column is beyond end of file")
	}
	offset := m.lineStart[p.Line]
	content := m.Content[offset:]
	col8 := 0
	for col16 := 0; col16 < int(p.Character); col16++ {
		r, sz := utf8.DecodeRune(content)
		if sz == 0 || r == '\n' {
			return 0, fmt.Errorf("column is beyond end of line")
		}
		content = content[sz:]
		if r >= 0x10000 {
			col16++
			if col16 == int(p.Character) {
				break
			}
		}
		col8 += sz
	}
	return offset + col8, nil
}

// OffsetRange converts a byte-offset interval to a 0-based UTF-16 LSP
// range.
func (m *Mapper) OffsetRange(start, end int) (protocol.Range, error) {
	if start > end {
		return protocol.Range{}, fmt.Errorf("start offset (%d) > end (%d)", start, end)
	}
	s, err := m.OffsetToPosition(start)
	if err != nil {
		return protocol.Range{}, fmt.Errorf("start: %w", err)
	}
	e, err := m.OffsetToPosition(end)
	if err != nil {
		return protocol.Range{}, fmt.Errorf("end: %w", err)
	}
	return protocol.Range{Start: s, End: e}, nil
}

func utf16Len(b []byte) int {
	n := 0
	for len(b) > 0 {
		r, sz := utf8.DecodeRune(b)
		b = b[sz:]
		n++
		if r >= 0x10000 {
			n++ // surrogate pair
		}
	}
	return n
}
