package snapshot

import (
	"context"

	"go.lsp.dev/protocol"
)

// Language identifies which of the two language families a file, symbol,
// or snapshot belongs to.
type Language int

const (
	// Unknown means the language could not be determined.
	Unknown Language = iota
	// Swift is the Swift-family language.
	Swift
	// Clang is the C-family language (C, C++, Objective-C).
	Clang
)

func (l Language) String() string {
	switch l {
	case Swift:
		return "Swift"
	case Clang:
		return "Clang"
	default:
		return "Unknown"
	}
}

// A Snapshot is an immutable view of one file's text, plus the line table
// needed to convert between UTF-8 backend coordinates and UTF-16 LSP
// positions. Snapshots are either borrowed from a document manager (open
// files) or owned ephemerally after a disk read (closed files); either
// way, the core never mutates through one.
type Snapshot struct {
	URI      protocol.DocumentURI
	Language Language
	Text     []byte
	Mapper   *Mapper
}

// New constructs a Snapshot over the given content, deriving its Mapper.
func New(uri protocol.DocumentURI, lang Language, text []byte) *Snapshot {
	return &Snapshot{
		URI:      uri,
		Language: lang,
		Text:     text,
		Mapper:   NewMapper(uri, text),
	}
}

// A Source loads Snapshots by URI. Implementations borrow from an
// in-memory document manager for open files and fall back to reading the
// file from disk for closed ones. Source is one of the external
// collaborators named in spec §1 ("The document manager... provides
// latest in-memory snapshots by URI"); this module only depends on the
// interface.
type Source interface {
	// Snapshot returns the current Snapshot for uri. If the file is not
	// open, implementations construct a read-only snapshot from disk.
	Snapshot(ctx context.Context, uri protocol.DocumentURI) (*Snapshot, error)
}
