package langservice

import (
	"context"

	"go.lsp.dev/protocol"

	"github.com/sourcekit-bridge/xlangrename/snapshot"
)

// LocalSwiftRenamer captures the Swift backend's own local (possibly
// semantic) rename and prepare-rename behavior, and its symbol lookup.
// Unlike name translation and syntactic-range requests (spec §6, wired
// via swiftbackend.Client), the distilled spec does not define a wire
// payload for these — it only names the capability ("rename(request) ->
// (edits, usr?)", "prepareRename(request) -> ...", "symbolInfo(...) ->
// ..." in §6's language-service contract). This module depends only on
// the interface; a real bridge backs it with sourcekitd's own rename
// request.
type LocalSwiftRenamer interface {
	LocalRename(ctx context.Context, snap *snapshot.Snapshot, position protocol.Position, newName string) (protocol.WorkspaceEdit, string, error)
	LocalPrepareRename(ctx context.Context, snap *snapshot.Snapshot, position protocol.Position) (PrepareRenameResponse, bool, error)
	LocalSymbolInfo(ctx context.Context, snap *snapshot.Snapshot, position protocol.Position) ([]SymbolDetail, error)
}

// LocalClangRenamer is LocalSwiftRenamer's Clang-side counterpart,
// backed by clangd's own local rename behavior.
type LocalClangRenamer interface {
	LocalRename(ctx context.Context, snap *snapshot.Snapshot, position protocol.Position, newName string) (protocol.WorkspaceEdit, string, error)
	LocalPrepareRename(ctx context.Context, snap *snapshot.Snapshot, position protocol.Position) (PrepareRenameResponse, bool, error)
	LocalSymbolInfo(ctx context.Context, snap *snapshot.Snapshot, position protocol.Position) ([]SymbolDetail, error)
}
