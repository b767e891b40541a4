// Package clangbackend defines the Clang backend's indexed-rename
// contract (spec §6). The backend is an external collaborator, out of
// scope; this package only defines the request/response shapes and the
// Client interface the rest of the engine depends on.
package clangbackend

import (
	"context"

	"go.lsp.dev/protocol"
)

// A Position is a 1-based UTF-8 (line, column) pair, the wire coordinate
// format at the Clang backend boundary.
type Position struct {
	Line, Column int
}

// IndexedRenameRequest is the Clang backend's indexed-rename request
// (spec §6): the old and new name, and the positions to rename grouped
// by file URI.
type IndexedRenameRequest struct {
	TextDocument protocol.DocumentURI
	OldName      string
	NewName      string
	Positions    map[protocol.DocumentURI][]Position
}

// Client is the subset of the Clang backend the rename engine depends
// on. A real implementation forwards to the running clangd-like index;
// this module depends only on the interface.
type Client interface {
	IndexedRename(ctx context.Context, req IndexedRenameRequest) (protocol.WorkspaceEdit, error)
}
