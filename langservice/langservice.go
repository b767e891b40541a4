// Package langservice defines the language-service contract (spec §6)
// each half of the bridge implements, and the two concrete adapters
// (Swift, Clang) that wire xlate, swiftbackend/clangbackend, piece, and
// edits together to satisfy it.
package langservice

import (
	"context"

	"go.lsp.dev/protocol"

	"github.com/sourcekit-bridge/xlangrename/index"
	"github.com/sourcekit-bridge/xlangrename/snapshot"
	"github.com/sourcekit-bridge/xlangrename/xlate"
)

// PrepareRenameResponse is a candidate range plus the placeholder text
// to show in the client's rename dialog (spec §6).
type PrepareRenameResponse struct {
	Range       protocol.Range
	Placeholder string
}

// SymbolDetail describes one symbol a language service reports at a
// position; USR is empty when the service has none to offer.
type SymbolDetail struct {
	USR string
}

// Service is the per-language contract the orchestrator (C6/C7) drives
// (spec §6). Each half of the bridge — Swift, Clang — implements it.
type Service interface {
	// Rename performs local rename for the primary file; it may be
	// purely semantic (e.g. delegating to the owning backend's own
	// rename). It also reports the USR of the renamed symbol, if known.
	Rename(ctx context.Context, snap *snapshot.Snapshot, position protocol.Position, newName string) (edits protocol.WorkspaceEdit, usr string, err error)

	// EditsToRename computes the edits for one file's occurrences of a
	// symbol, given its definition-site identity before and after
	// rename (spec §4.6's editsToRename bullets).
	EditsToRename(ctx context.Context, locations []index.RenameLocation, snap *snapshot.Snapshot, oldName, newName *xlate.TranslatableName) ([]protocol.TextEdit, error)

	// PrepareRename resolves the placeholder and range for the rename
	// dialog at a position, or (zero, false) if no symbol is renameable
	// there.
	PrepareRename(ctx context.Context, snap *snapshot.Snapshot, position protocol.Position) (PrepareRenameResponse, bool, error)

	// SymbolInfo reports the symbols known at a position.
	SymbolInfo(ctx context.Context, snap *snapshot.Snapshot, position protocol.Position) ([]SymbolDetail, error)
}
